package models

import "time"

// AuthToken is the single live bearer token of a user. Deleting the row revokes it.
type AuthToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	Key       string    `json:"key" gorm:"column:token_key;size:512;uniqueIndex;not null"`
	JTI       string    `json:"-" gorm:"column:jti;size:36"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}

func (t *AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
