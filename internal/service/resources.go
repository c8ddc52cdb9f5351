package service

import (
	"time"

	"foodhub/internal/model"
	"foodhub/internal/schema"
)

// Resource describes one collection exposed over the API.
type Resource[T any] struct {
	// Name is the singular noun used in messages and response keys ("product").
	Name   string
	Schema *schema.Schema
	// Build turns a validated create payload into the document to insert.
	Build func(doc schema.Document, now time.Time) T
	// Duplicate is reported when the store rejects a write on a unique index.
	// Resources without unique indexes leave it empty.
	Duplicate string
}

var Users = Resource[model.User]{
	Name:      "user",
	Schema:    schema.Users,
	Build:     buildUser,
	Duplicate: "Email already exists",
}

var Products = Resource[model.Product]{
	Name:   "product",
	Schema: schema.Products,
	Build:  buildProduct,
}

var Orders = Resource[model.Order]{
	Name:   "order",
	Schema: schema.Orders,
	Build:  buildOrder,
}

var Reviews = Resource[model.Review]{
	Name:   "review",
	Schema: schema.Reviews,
	Build:  buildReview,
}

func buildUser(d schema.Document, now time.Time) model.User {
	return model.User{
		FirstName: d.String("firstName"),
		LastName:  d.String("lastName"),
		Email:     d.String("email"),
		Phone:     d.String("phone"),
		Address:   d.String("address"),
		CreatedAt: now,
	}
}

func buildProduct(d schema.Document, now time.Time) model.Product {
	return model.Product{
		Name:        d.String("name"),
		Description: d.String("description"),
		Price:       d.Float("price"),
		Category:    model.Category(d.String("category")),
		Stock:       d.Float("stock"),
		Image:       d.String("image"),
		IsAvailable: d.Bool("isAvailable"),
		CreatedAt:   now,
	}
}

func buildOrder(d schema.Document, now time.Time) model.Order {
	lines := d.List("products")
	items := make([]model.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.LineItem{
			ProductID: model.NewRef[model.Product](line.ObjectID("productId")),
			Quantity:  line.Float("quantity"),
			Price:     line.Float("price"),
			Name:      line.String("name"),
		})
	}

	return model.Order{
		UserID:          model.NewRef[model.User](d.ObjectID("userId")),
		Products:        items,
		TotalAmount:     d.Float("totalAmount"),
		DeliveryAddress: d.String("deliveryAddress"),
		Status:          model.OrderStatus(d.String("status")),
		OrderDate:       now,
		CreatedAt:       now,
	}
}

func buildReview(d schema.Document, now time.Time) model.Review {
	return model.Review{
		UserID:    model.NewRef[model.User](d.ObjectID("userId")),
		ProductID: model.NewRef[model.Product](d.ObjectID("productId")),
		Rating:    d.Int("rating"),
		Comment:   d.String("comment"),
		CreatedAt: now,
	}
}
