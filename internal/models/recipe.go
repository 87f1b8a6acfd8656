package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBStringArray: %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Nutrition holds per-serving macros for a recipe
type Nutrition struct {
	CaloriesKcal int     `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
}

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	RecipeID uint   `gorm:"not null;index" json:"-"`
	Position int    `gorm:"not null" json:"-"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Amount   string `gorm:"size:50" json:"amount"`
	Unit     string `gorm:"size:20" json:"unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Recipe is either public (Owner nil, created by seeding) or private to the
// account whose username is stored in Owner.
type Recipe struct {
	ID           uint             `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Description  string           `gorm:"size:2000;not null" json:"description"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Category     string           `gorm:"size:50;index" json:"category"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	PrepMinutes  *int             `json:"prep_minutes,omitempty"`
	Servings     *int             `json:"servings,omitempty"`
	Nutrition    Nutrition        `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	Ingredients  []Ingredient     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Owner        *string          `gorm:"size:50;index" json:"owner,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// IsPublic reports whether the recipe has no owning account
func (r *Recipe) IsPublic() bool {
	return r.Owner == nil || strings.TrimSpace(*r.Owner) == ""
}
