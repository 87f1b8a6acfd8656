package models

import (
	"strings"
	"time"
)

// Account is a registered user. UsernameKey is the lower-cased username and
// carries the uniqueness constraint so that "Anna" and "anna" collide.
type Account struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	UsernameKey  string    `gorm:"size:50;not null;uniqueIndex" json:"-"`
	PasswordHash string    `gorm:"size:60;not null" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}

// UsernameKey normalizes a username for comparison
func UsernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Favorite links an account to a recipe it marked. The composite primary key
// makes a second insert of the same pair a no-op conflict.
type Favorite struct {
	AccountID uint      `gorm:"primaryKey;autoIncrement:false" json:"account_id"`
	RecipeID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "account_favorites"
}
