package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryMeals  Category = "meals"
	CategorySnacks Category = "snacks"
	CategoryDrinks Category = "drinks"
)

// Categories lists every accepted product category in display order.
var Categories = []string{
	string(CategoryMeals),
	string(CategorySnacks),
	string(CategoryDrinks),
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    Category           `bson:"category" json:"category"`
	Stock       float64            `bson:"stock" json:"stock"`
	Image       string             `bson:"image" json:"image"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
