package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemPatch_Apply_MergesOnlySetFields(t *testing.T) {
	item := StoreItem{ID: "1", ItemName: "A", Price: 10, Quantity: 3, Category: "tea"}

	name := "B"
	price := 12.5
	got := ItemPatch{ID: "1", ItemName: &name, Price: &price}.Apply(item)

	assert.Equal(t, StoreItem{ID: "1", ItemName: "B", Price: 12.5, Quantity: 3, Category: "tea"}, got)
}

func TestItemPatch_Apply_ZeroValuesAreApplied(t *testing.T) {
	item := StoreItem{ID: "1", Quantity: 3, Image: "img"}

	zero := 0
	empty := ""
	got := ItemPatch{ID: "1", Quantity: &zero, Image: &empty}.Apply(item)

	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, "", got.Image)
}

func TestStore_Clone_DoesNotShareSlices(t *testing.T) {
	s := &Store{ID: "s1", Items: []StoreItem{{ID: "1"}}, Reviews: []Review{{UserID: "u"}}}

	c := s.Clone()
	c.Items[0].ItemName = "changed"
	c.Items = append(c.Items, StoreItem{ID: "2"})
	c.Reviews[0].Rating = 5

	assert.Equal(t, "", s.Items[0].ItemName)
	assert.Len(t, s.Items, 1)
	assert.Equal(t, 0, s.Reviews[0].Rating)
	assert.Nil(t, (*Store)(nil).Clone())
}

func TestUser_Sanitized(t *testing.T) {
	u := &User{ID: "u1", UserName: "bob", PasswordHash: "hash"}

	s := u.Sanitized()
	assert.Empty(t, s.PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, "bob", s.UserName)
	assert.Nil(t, (*User)(nil).Sanitized())
}
