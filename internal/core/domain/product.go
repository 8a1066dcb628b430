package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidProductID = errors.New("invalid product id")

// IsValidProductID reports whether s is a well-formed product identifier
// (24 hex characters, the document id format).
func IsValidProductID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Product is a catalog entry. Price is stored in dollars; checkout math
// converts to integer cents before any arithmetic.
type Product struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Image       string  `json:"image" bson:"image"`
	Category    string  `json:"category" bson:"category"`
	IsFeatured  bool    `json:"is_featured" bson:"is_featured"`
}
