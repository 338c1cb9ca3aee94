package services

import (
	"context"

	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/models"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
)

// StoreService covers the store operations that write whole fields rather
// than nested collections.
type StoreService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewStoreService(m repomanager.RepositoryManager, log logging.Logger) *StoreService {
	return &StoreService{repomanager: m, log: log.With("service", "stores")}
}

func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*models.Store, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	store, err := s.repomanager.Stores().Create(ctx, &models.Store{
		StoreName:  req.StoreName,
		MerchantID: req.MerchantID,
		Location:   req.Location,
	})
	if err != nil {
		s.log.Error(ctx, "error creating store", "error", err)
		return nil, err
	}
	s.log.Info(ctx, "store created", "storeID", store.ID, "merchantID", store.MerchantID)
	return store, nil
}

func (s *StoreService) List(ctx context.Context) ([]*models.Store, error) {
	stores, err := s.repomanager.Stores().List(ctx)
	if err != nil {
		s.log.Error(ctx, "error retrieving stores", "error", err)
		return nil, err
	}
	return stores, nil
}

func (s *StoreService) Get(ctx context.Context, id string) (*models.Store, error) {
	return s.repomanager.Stores().Get(ctx, id)
}

func (s *StoreService) UpdateInfo(ctx context.Context, req UpdateStoreRequest) (*models.Store, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	store, err := s.repomanager.Stores().UpdateInfo(ctx, req.StoreID, req.StoreName, req.Location)
	if err != nil {
		s.log.Error(ctx, "error updating store", "storeID", req.StoreID, "error", err)
		return nil, err
	}
	s.log.Info(ctx, "store updated", "storeID", store.ID)
	return store, nil
}

func (s *StoreService) UpdateDescription(ctx context.Context, req UpdateDescriptionRequest) (*models.Store, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repomanager.Stores().UpdateDescription(ctx, req.StoreID, req.Description)
}

func (s *StoreService) Delete(ctx context.Context, id string) (*models.Store, error) {
	store, err := s.repomanager.Stores().Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "store deleted", "storeID", id)
	return store, nil
}

func (s *StoreService) Description(ctx context.Context, id string) (string, error) {
	store, err := s.repomanager.Stores().Get(ctx, id)
	if err != nil {
		return "", err
	}
	return store.Description, nil
}

func (s *StoreService) ItemCount(ctx context.Context, id string) (int, error) {
	store, err := s.repomanager.Stores().Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(store.Items), nil
}
