package schema

import (
	"regexp"

	"foodhub/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var Users = &Schema{
	Fields: []Field{
		{Name: "firstName", Type: String, Required: true, Mutable: true},
		{Name: "lastName", Type: String, Required: true, Mutable: true},
		{Name: "email", Type: String, Required: true, Mutable: true,
			Message: "Invalid email format", Checks: []Check{Matches(emailPattern)}},
		{Name: "phone", Type: String, Mutable: true, Default: ""},
		{Name: "address", Type: String, Mutable: true, Default: ""},
	},
}

var Products = &Schema{
	Fields: []Field{
		{Name: "name", Type: String, Required: true, Mutable: true},
		{Name: "description", Type: String, Required: true, Mutable: true},
		{Name: "price", Type: Number, Required: true, Mutable: true,
			Message: "price must be a positive number", Checks: []Check{Min(0)}},
		{Name: "category", Type: String, Required: true, Mutable: true,
			Message: oneOfMessage("category", model.Categories), Checks: []Check{OneOf(model.Categories...)}},
		{Name: "stock", Type: Number, Mutable: true, Default: 0.0,
			Message: "stock must be a non-negative number", Checks: []Check{Min(0)}},
		{Name: "image", Type: String, Mutable: true, Default: ""},
		{Name: "isAvailable", Type: Bool, Mutable: true, Default: true},
	},
}

var LineItems = &Schema{
	MissingMessage: "Each product must have productId, quantity, and price",
	Fields: []Field{
		{Name: "productId", Type: ID, Required: true, Message: "Invalid productId format in products array"},
		{Name: "quantity", Type: Number, Required: true,
			Message: "Product quantity must be a positive number", Checks: []Check{Greater(0)}},
		{Name: "price", Type: Number, Required: true,
			Message: "Product price must be a positive number", Checks: []Check{Greater(0)}},
		{Name: "name", Type: String, Default: ""},
	},
}

var Orders = &Schema{
	Fields: []Field{
		{Name: "userId", Type: ID, Required: true},
		{Name: "products", Type: List, Required: true, Elem: LineItems,
			Message: "products must be a non-empty array", Checks: []Check{NonEmpty()}},
		{Name: "totalAmount", Type: Number, Required: true, Mutable: true,
			Message: "totalAmount must be a positive number", Checks: []Check{Greater(0)}},
		{Name: "deliveryAddress", Type: String, Required: true, Mutable: true},
		{Name: "status", Type: String, Mutable: true, Default: string(model.OrderStatusPending),
			Message: oneOfMessage("status", model.OrderStatuses), Checks: []Check{OneOf(model.OrderStatuses...)}},
	},
}

var Reviews = &Schema{
	Fields: []Field{
		{Name: "userId", Type: ID, Required: true},
		{Name: "productId", Type: ID, Required: true},
		{Name: "rating", Type: Integer, Required: true, Mutable: true,
			Message: "rating must be a number between 1 and 5", Checks: []Check{Between(1, 5)}},
		{Name: "comment", Type: String, Mutable: true, Default: "",
			Checks: []Check{MaxLen(500).Msg("comment must be 500 characters or less")}},
	},
}
