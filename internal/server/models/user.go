// Package models defines the server-side aggregates persisted by the repositories.
package models

import "time"

// User is an account. PasswordHash never leaves the server: it is excluded
// from JSON and cleared by Sanitized before a record is returned to callers.
type User struct {
	ID                    string    `json:"_id"`
	UserName              string    `json:"userName"`
	PasswordHash          string    `json:"-"`
	Contact               string    `json:"contact,omitempty"`
	Address               string    `json:"address,omitempty"`
	Role                  string    `json:"role"`
	ImageKey              string    `json:"imageKey,omitempty"`
	GoogleAuthAccessToken string    `json:"googleAuthAccessToken,omitempty"`
	StoreID               string    `json:"storeID,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Sanitized returns a copy without the credential secret.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}
