package model

import "time"

// User mirrors an identity provider account. Rows are written only by the
// identity webhook.
type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Name           string    `json:"name"`
	Email          string    `gorm:"index" json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserCredit holds the prepaid credit balance of a user. One row per user.
type UserCredit struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"uniqueIndex;size:64;not null" json:"userId"`
	Amount    int       `gorm:"not null;default:0;check:amount >= 0" json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserCredit) TableName() string {
	return "user_credits"
}
