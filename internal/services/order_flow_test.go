package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"techmart/internal/domain"
	"techmart/internal/repos"
	"techmart/internal/services"
)

func TestOrderFlowAddThenPlace(t *testing.T) {
	db := memdbCart(t)
	db.MustExec(`CREATE TABLE orders(id TEXT PRIMARY KEY, customer_id INTEGER DEFAULT 0,
	  cart_id TEXT, status TEXT DEFAULT 'PLACED', created_at TEXT DEFAULT CURRENT_TIMESTAMP)`)

	cartRepo := repos.NewCartRepo(db)
	cartSvc := newCartSvc(db)
	orderSvc := services.NewOrderService(cartRepo, cartSvc, repos.NewOrderRepo(db))

	cart, err := cartSvc.EnsureCart("sess-9", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(cart, domain.KindNotebook, 1, 2); err != nil {
		t.Fatal(err)
	}

	oid, err := orderSvc.Place(cart)
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}

	o, err := repos.NewOrderRepo(db).Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.CartID != cart.ID || o.Status != "PLACED" {
		t.Fatalf("order row wrong: %+v", o)
	}

	placed, err := cartRepo.Get(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !placed.InOrder {
		t.Fatal("cart not flipped to in_order")
	}
	// the finalized cart keeps its totals for history
	if placed.TotalItems != 2 {
		t.Fatalf("finalized cart lost totals: %+v", placed)
	}

	if _, err := orderSvc.Place(placed); !errors.Is(err, services.ErrCartFinalized) {
		t.Fatalf("double place: want ErrCartFinalized, got %v", err)
	}
}

func TestPlaceEmptyCart(t *testing.T) {
	db := memdbCart(t)
	db.MustExec(`CREATE TABLE orders(id TEXT PRIMARY KEY, customer_id INTEGER DEFAULT 0,
	  cart_id TEXT, status TEXT DEFAULT 'PLACED', created_at TEXT DEFAULT CURRENT_TIMESTAMP)`)

	cartSvc := newCartSvc(db)
	orderSvc := services.NewOrderService(repos.NewCartRepo(db), cartSvc, repos.NewOrderRepo(db))

	cart, _ := cartSvc.EnsureCart("sess-0", 0)
	if _, err := orderSvc.Place(cart); !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}
