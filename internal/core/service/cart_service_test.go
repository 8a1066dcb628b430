package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
)

func newCartFixture(products ...domain.Product) (*CartService, *stubUserRepo, *domain.User) {
	users := newStubUserRepo()
	user, _ := users.Create(context.Background(), &domain.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  domain.RoleCustomer,
	})
	svc := NewCartService(users, newStubProductRepo(products...), zerolog.Nop())
	return svc, users, user
}

func TestCartService_Add_NewAndIncrement(t *testing.T) {
	svc, users, user := newCartFixture(domain.Product{ID: "p1", Name: "Jacket"})

	items, err := svc.Add(context.Background(), user, "p1")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("unexpected cart after first add: %+v", items)
	}

	items, err = svc.Add(context.Background(), user, "p1")
	if err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected quantity increment, got %+v", items)
	}

	persisted := users.users[user.ID]
	if len(persisted.CartItems) != 1 || persisted.CartItems[0].Quantity != 2 {
		t.Fatalf("cart not persisted: %+v", persisted.CartItems)
	}
}

func TestCartService_Add_UnknownProduct(t *testing.T) {
	svc, _, user := newCartFixture()

	if _, err := svc.Add(context.Background(), user, "missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_Remove_SingleProduct(t *testing.T) {
	svc, _, user := newCartFixture(
		domain.Product{ID: "p1"},
		domain.Product{ID: "p2"},
	)
	user.CartItems = []domain.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	items, err := svc.Remove(context.Background(), user, "p1")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("unexpected cart after remove: %+v", items)
	}
}

func TestCartService_Remove_EmptiesCart(t *testing.T) {
	svc, _, user := newCartFixture(domain.Product{ID: "p1"})
	user.CartItems = []domain.CartItem{{ProductID: "p1", Quantity: 3}}

	items, err := svc.Remove(context.Background(), user, "")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, _, user := newCartFixture(domain.Product{ID: "p1"})
	user.CartItems = []domain.CartItem{{ProductID: "p1", Quantity: 1}}

	items, err := svc.UpdateQuantity(context.Background(), user, "p1", 5)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("unexpected cart: %+v", items)
	}
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	svc, _, user := newCartFixture(domain.Product{ID: "p1"})
	user.CartItems = []domain.CartItem{{ProductID: "p1", Quantity: 2}}

	items, err := svc.UpdateQuantity(context.Background(), user, "p1", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected item removed, got %+v", items)
	}
}

func TestCartService_UpdateQuantity_NotInCart(t *testing.T) {
	svc, _, user := newCartFixture(domain.Product{ID: "p1"})

	if _, err := svc.UpdateQuantity(context.Background(), user, "p1", 2); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_Items_JoinsCatalog(t *testing.T) {
	svc, _, user := newCartFixture(
		domain.Product{ID: "p1", Name: "Jacket", Price: 79.99},
		domain.Product{ID: "p2", Name: "Hat", Price: 19.99},
	)
	user.CartItems = []domain.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	items, err := svc.Items(context.Background(), user)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	for _, item := range items {
		if item.ID == "p1" && item.Quantity != 2 {
			t.Fatalf("wrong quantity for p1: %d", item.Quantity)
		}
		if item.ID == "p2" && item.Quantity != 1 {
			t.Fatalf("wrong quantity for p2: %d", item.Quantity)
		}
	}
}

func TestCartService_Items_DropsDeletedProducts(t *testing.T) {
	// p2 referenced by the cart no longer exists in the catalog.
	svc, _, user := newCartFixture(domain.Product{ID: "p1", Name: "Jacket"})
	user.CartItems = []domain.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 4},
	}

	items, err := svc.Items(context.Background(), user)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("expected deleted product dropped, got %+v", items)
	}
}

func TestCartService_Items_EmptyCart(t *testing.T) {
	svc, _, user := newCartFixture()

	items, err := svc.Items(context.Background(), user)
	if err != nil {
		t.Fatalf("Items returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}
