package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// CartService mutates the cart embedded in the user aggregate.
type CartService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{users: users, products: products, log: log}
}

// Items joins the cart's product references against the catalog. Entries
// whose product has been deleted are dropped from the result.
func (s *CartService) Items(ctx context.Context, user *domain.User) ([]ports.CartProduct, error) {
	if len(user.CartItems) == 0 {
		return []ports.CartProduct{}, nil
	}

	ids := make([]string, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	quantities := make(map[string]int, len(user.CartItems))
	for _, item := range user.CartItems {
		quantities[item.ProductID] = item.Quantity
	}

	out := make([]ports.CartProduct, 0, len(products))
	for _, p := range products {
		out = append(out, ports.CartProduct{Product: p, Quantity: quantities[p.ID]})
	}
	return out, nil
}

// Add increments the quantity of an existing entry or appends a new one.
func (s *CartService) Add(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	items := user.CartItems
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, domain.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	user.CartItems = items
	return items, nil
}

// Remove drops one product from the cart, or all items when productID is blank.
func (s *CartService) Remove(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if productID != "" {
		for _, item := range user.CartItems {
			if item.ProductID != productID {
				items = append(items, item)
			}
		}
	}
	if items == nil {
		items = []domain.CartItem{}
	}

	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	user.CartItems = items
	return items, nil
}

// UpdateQuantity sets the quantity of an existing entry; zero removes it.
// A product not present in the cart fails with ErrProductNotFound.
func (s *CartService) UpdateQuantity(ctx context.Context, user *domain.User, productID string, quantity int) ([]domain.CartItem, error) {
	idx := -1
	for i := range user.CartItems {
		if user.CartItems[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}

	items := make([]domain.CartItem, 0, len(user.CartItems))
	for i, item := range user.CartItems {
		if i == idx {
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
		}
		items = append(items, item)
	}

	if err := s.users.UpdateCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	user.CartItems = items
	return items, nil
}
