package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"techmart/internal/domain"
	"techmart/internal/repos"
	"techmart/internal/services"
)

func memdbCart(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE notebooks(id INTEGER PRIMARY KEY AUTOINCREMENT, category_id INTEGER, title TEXT,
	  slug TEXT UNIQUE, image TEXT DEFAULT '', description TEXT, price NUMERIC,
	  diagonal TEXT DEFAULT '', display_type TEXT DEFAULT '', processor TEXT DEFAULT '',
	  ram TEXT DEFAULT '', video TEXT DEFAULT '', time_without_charge TEXT DEFAULT '',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE smartphones(id INTEGER PRIMARY KEY AUTOINCREMENT, category_id INTEGER, title TEXT,
	  slug TEXT UNIQUE, image TEXT DEFAULT '', description TEXT, price NUMERIC,
	  diagonal TEXT DEFAULT '', resolution TEXT DEFAULT '', processor TEXT DEFAULT '',
	  ram TEXT DEFAULT '', accum TEXT DEFAULT '', sd INTEGER DEFAULT 1,
	  memory_volume TEXT DEFAULT '', main_camera TEXT DEFAULT '', front_camera TEXT DEFAULT '',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE carts(id TEXT PRIMARY KEY, session_id TEXT DEFAULT '', customer_id INTEGER DEFAULT 0,
	  total_items INTEGER DEFAULT 0, total_price NUMERIC DEFAULT 0,
	  in_order INTEGER DEFAULT 0, is_anonymous INTEGER DEFAULT 0, updated_at TEXT);
	CREATE TABLE cart_items(id INTEGER PRIMARY KEY AUTOINCREMENT, cart_id TEXT, customer_id INTEGER DEFAULT 0,
	  product_kind TEXT, product_id INTEGER, quantity INTEGER, subtotal NUMERIC,
	  UNIQUE(cart_id, product_kind, product_id));

	INSERT INTO notebooks(category_id,title,slug,price) VALUES (1,'HP Pavilion','hp-pavilion',999.99);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartSvc(db *sqlx.DB) *services.CartService {
	return services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
}

func TestAddComputesSubtotalFromCurrentPrice(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	cart, err := svc.EnsureCart("sess-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(cart, domain.KindNotebook, 1, 3); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 {
		t.Fatalf("want 1 line, got %d", len(cv.Lines))
	}
	if want := decimal.RequireFromString("2999.97"); !cv.Lines[0].Item.Subtotal.Equal(want) {
		t.Fatalf("want subtotal %s, got %s", want, cv.Lines[0].Item.Subtotal)
	}
	if cv.Cart.TotalItems != 3 {
		t.Fatalf("want total_items 3, got %d", cv.Cart.TotalItems)
	}
	if want := decimal.RequireFromString("2999.97"); !cv.Cart.TotalPrice.Equal(want) {
		t.Fatalf("want total_price %s, got %s", want, cv.Cart.TotalPrice)
	}
}

func TestRefreshItemPicksUpPriceChange(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	cart, _ := svc.EnsureCart("sess-1", 0)
	if err := svc.Add(cart, domain.KindNotebook, 1, 3); err != nil {
		t.Fatal(err)
	}

	db.MustExec(`UPDATE notebooks SET price=1099.99 WHERE id=1`)

	cv, _ := svc.View(cart.ID)
	if err := svc.RefreshItem(cv.Lines[0].Item.ID); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.RequireFromString("3299.97"); !cv.Lines[0].Item.Subtotal.Equal(want) {
		t.Fatalf("want subtotal %s after price change, got %s", want, cv.Lines[0].Item.Subtotal)
	}
	if want := decimal.RequireFromString("3299.97"); !cv.Cart.TotalPrice.Equal(want) {
		t.Fatalf("want total %s after refresh, got %s", want, cv.Cart.TotalPrice)
	}
}

func TestAddGrowsExistingLineItem(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	cart, _ := svc.EnsureCart("sess-1", 0)
	if err := svc.Add(cart, domain.KindNotebook, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(cart, domain.KindNotebook, 1, 1); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].Item.Quantity != 3 {
		t.Fatalf("want one line with qty 3, got %+v", cv.Lines)
	}
}

func TestTotalsRecomputedOnRemoval(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	cart, _ := svc.EnsureCart("sess-1", 0)
	if err := svc.Add(cart, domain.KindNotebook, 1, 2); err != nil {
		t.Fatal(err)
	}
	cv, _ := svc.View(cart.ID)
	if err := svc.RemoveItem(cart, cv.Lines[0].Item.ID); err != nil {
		t.Fatal(err)
	}

	cv, err := svc.View(cart.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cv.Cart.TotalItems != 0 || !cv.Cart.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("totals not reset: items=%d price=%s", cv.Cart.TotalItems, cv.Cart.TotalPrice)
	}
}

func TestItemMutationScopedToOwningCart(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	owner, err := svc.EnsureCart("sess-owner", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(owner, domain.KindNotebook, 1, 2); err != nil {
		t.Fatal(err)
	}
	cv, _ := svc.View(owner.ID)
	itemID := cv.Lines[0].Item.ID

	stranger, err := svc.EnsureCart("sess-stranger", 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveItem(stranger, itemID); !errors.Is(err, services.ErrItemNotInCart) {
		t.Fatalf("RemoveItem through foreign cart: want ErrItemNotInCart, got %v", err)
	}
	if err := svc.SetQuantity(stranger, itemID, 9); !errors.Is(err, services.ErrItemNotInCart) {
		t.Fatalf("SetQuantity through foreign cart: want ErrItemNotInCart, got %v", err)
	}

	cv, err = svc.View(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 1 || cv.Lines[0].Item.Quantity != 2 {
		t.Fatalf("owner's line was touched: %+v", cv.Lines)
	}
}

func TestEnsureCartSurfacesStoreErrors(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)
	db.Close()

	if _, err := svc.EnsureCart("sess-x", 0); err == nil {
		t.Fatal("want error from broken store, got a fresh cart")
	}
	if _, err := svc.EnsureCart("sess-x", 7); err == nil {
		t.Fatal("want error from broken store for customer lookup, got a fresh cart")
	}
}

func TestFinalizedCartRejectsMutation(t *testing.T) {
	db := memdbCart(t)
	svc := newCartSvc(db)

	cart, _ := svc.EnsureCart("sess-1", 0)
	if err := svc.Add(cart, domain.KindNotebook, 1, 1); err != nil {
		t.Fatal(err)
	}
	cv, _ := svc.View(cart.ID)
	itemID := cv.Lines[0].Item.ID

	db.MustExec(`UPDATE carts SET in_order=1 WHERE id=?`, cart.ID)
	cart, err := svc.Carts.Get(cart.ID)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Add(cart, domain.KindNotebook, 1, 1); !errors.Is(err, services.ErrCartFinalized) {
		t.Fatalf("Add on finalized cart: want ErrCartFinalized, got %v", err)
	}
	if err := svc.SetQuantity(cart, itemID, 5); !errors.Is(err, services.ErrCartFinalized) {
		t.Fatalf("SetQuantity on finalized cart: want ErrCartFinalized, got %v", err)
	}
	if err := svc.Clear(cart.ID); !errors.Is(err, services.ErrCartFinalized) {
		t.Fatalf("Clear on finalized cart: want ErrCartFinalized, got %v", err)
	}

	// A fresh open cart is issued for the same session afterwards
	next, err := svc.EnsureCart("sess-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if next.ID == cart.ID || next.InOrder {
		t.Fatalf("expected a new open cart, got %+v", next)
	}
}
