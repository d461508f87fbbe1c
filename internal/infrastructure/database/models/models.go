package models

import (
	"time"
)

type Cocktail struct {
	ID          int64                `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string               `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Category    string               `json:"category" gorm:"type:text;not null"`
	Instruction string               `json:"instruction" gorm:"type:text"`
	CDate       time.Time            `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time            `json:"mdate" gorm:"autoUpdateTime"`
	Ingredients []CocktailIngredient `json:"ingredients" gorm:"foreignKey:CocktailID"`
}

type Ingredient struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	IsAlcoholic bool      `json:"isAlcoholic" gorm:"not null;default:false"`
	Photo       *string   `json:"photo,omitempty" gorm:"type:text"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// CocktailIngredient is the attributed many-to-many edge. The composite
// primary key enforces at most one link per (cocktail, ingredient)
// pair, and both references cascade on endpoint deletion.
type CocktailIngredient struct {
	CocktailID   int64      `json:"cocktailID" gorm:"primaryKey"`
	Cocktail     Cocktail   `json:"-" gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE;"`
	IngredientID int64      `json:"ingredientID" gorm:"primaryKey"`
	Ingredient   Ingredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE;"`
	Quantity     string     `json:"quantity" gorm:"type:text;not null;default:''"`
}
