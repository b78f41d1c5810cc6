package models

import "time"

// Target kinds a notification may point at
const (
	TargetUser   = "user"
	TargetRecipe = "recipe"
)

const VerbStartedFollowing = "started following you"

// TargetRef is a tagged reference to the object a notification is about
type TargetRef struct {
	Kind string `json:"kind" gorm:"column:target_type;size:30"`
	ID   uint   `json:"id" gorm:"column:target_id"`
}

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	ActorID     uint      `json:"actor_id" gorm:"index;not null"`
	Verb        string    `json:"verb" gorm:"size:50"`
	Target      TargetRef `json:"target" gorm:"embedded"`
	Timestamp   time.Time `json:"timestamp" gorm:"column:created_at;autoCreateTime;index"`
	IsRead      bool      `json:"read" gorm:"column:is_read;default:false;index"`
}
