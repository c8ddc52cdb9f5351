package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []string{
	string(OrderStatusPending),
	string(OrderStatusConfirmed),
	string(OrderStatusDelivered),
	string(OrderStatusCancelled),
}

// LineItem is one product entry of an order. Price is captured at order time.
type LineItem struct {
	ProductID Ref[Product] `bson:"productId" json:"productId"`
	Quantity  float64      `bson:"quantity" json:"quantity"`
	Price     float64      `bson:"price" json:"price"`
	Name      string       `bson:"name" json:"name"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          Ref[User]          `bson:"userId" json:"userId"`
	Products        []LineItem         `bson:"products" json:"products"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	DeliveryAddress string             `bson:"deliveryAddress" json:"deliveryAddress"`
	Status          OrderStatus        `bson:"status" json:"status"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
