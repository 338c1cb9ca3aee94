package services

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/storehub/internal/cryptox"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/config"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	cryptox.Cost = bcrypt.MinCost
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:           "test-secret",
		SessionTTL:          72 * time.Hour,
		MutationMaxAttempts: 64,
		MutationRetryDelay:  time.Millisecond,
	}
}

type fixture struct {
	repos  *repomanager.MemoryRepositoryManager
	images *media.MemoryImageStore
	auth   *AuthSession
	mut    *SubResourceMutator
	users  *UserService
	stores *StoreService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := testConfig()
	log := logging.NewNopLogger()
	repos := repomanager.NewMemoryRepositoryManager()
	images := media.NewMemoryImageStore()

	a, err := NewAuthSession(repos, cfg, images, log)
	if err != nil {
		t.Fatalf("NewAuthSession error: %v", err)
	}

	return &fixture{
		repos:  repos,
		images: images,
		auth:   a,
		mut:    NewSubResourceMutator(repos, cfg, log),
		users:  NewUserService(repos, images, log),
		stores: NewStoreService(repos, log),
	}
}
