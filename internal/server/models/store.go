package models

import "time"

// Collection names a nested collection of a Store.
type Collection string

const (
	CollectionItems   Collection = "items"
	CollectionReviews Collection = "reviews"
)

// Store is the store aggregate. Version is bumped by the repository on every
// write and is what optimistic mutations compare against.
type Store struct {
	ID          string      `json:"_id"`
	StoreName   string      `json:"storeName"`
	MerchantID  string      `json:"merchantID"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Items       []StoreItem `json:"storeItem"`
	Reviews     []Review    `json:"reviews"`
	Version     int64       `json:"version"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy; the nested slices are not shared.
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = append(make([]StoreItem, 0, len(s.Items)), s.Items...)
	c.Reviews = append(make([]Review, 0, len(s.Reviews)), s.Reviews...)
	return &c
}

// StoreItem is one element of a store's item collection. ID is unique
// within its store.
type StoreItem struct {
	ID          string  `json:"_id"`
	ItemName    string  `json:"itemName"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

// ItemPatch is a partial StoreItem: nil fields are left unchanged by Apply.
type ItemPatch struct {
	ID          string   `json:"_id"`
	ItemName    *string  `json:"itemName,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// Apply merges the set fields of p into item and returns the result.
func (p ItemPatch) Apply(item StoreItem) StoreItem {
	if p.ItemName != nil {
		item.ItemName = *p.ItemName
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	return item
}

// Review is appended to a store and never edited.
type Review struct {
	UserID   string `json:"userID"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}
