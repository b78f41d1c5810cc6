package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"size:50;uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserPopularity is a user row annotated with its follower count
type UserPopularity struct {
	ID             uint
	Username       string
	FollowersCount int64
}

type RegisterRequest struct {
	Username  string `json:"username" form:"username" validate:"required,max=50"`
	Email     string `json:"email" form:"email" validate:"required,email,max=50"`
	Password  string `json:"password" form:"password" validate:"required"`
	Password2 string `json:"password2" form:"password2" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" form:"username" validate:"omitempty,max=50"`
}

// UserSummary is the public shape used by follower and following lists
type UserSummary struct {
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
}

type ProfileResponse struct {
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
	FollowersCount int64   `json:"followers_count"`
}

func (u *User) ToSummary() UserSummary {
	return UserSummary{Username: u.Username, ProfilePicture: optional(u.ProfilePicture)}
}

func (u *User) ToProfile(followers int64) ProfileResponse {
	return ProfileResponse{
		Username:       u.Username,
		ProfilePicture: optional(u.ProfilePicture),
		FollowersCount: followers,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
