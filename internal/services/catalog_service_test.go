package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"techmart/internal/domain"
	"techmart/internal/repos"
	"techmart/internal/services"
)

func memdbCatalog(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE categories(id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, slug TEXT UNIQUE,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
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

	INSERT INTO categories(name,slug) VALUES ('Ноутбуки','notebooks'),('Смартфоны','smartphones');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 6; i++ {
		db.MustExec(`INSERT INTO notebooks(category_id,title,slug,price) VALUES(1,?,?,100)`,
			fmt.Sprintf("Notebook %d", i), fmt.Sprintf("notebook-%d", i))
	}
	for i := 1; i <= 3; i++ {
		db.MustExec(`INSERT INTO smartphones(category_id,title,slug,price) VALUES(2,?,?,100)`,
			fmt.Sprintf("Smartphone %d", i), fmt.Sprintf("smartphone-%d", i))
	}
	return db
}

func newCatalogSvc(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

func kindsOf(ps []domain.Priceable) []domain.Kind {
	out := make([]domain.Kind, len(ps))
	for i, p := range ps {
		out[i] = p.ProductKind()
	}
	return out
}

func TestLatestProductsNoPreference(t *testing.T) {
	svc := newCatalogSvc(memdbCatalog(t))

	got, err := svc.LatestProducts([]domain.Kind{domain.KindNotebook, domain.KindSmartphone}, "")
	if err != nil {
		t.Fatal(err)
	}
	// at most 5 notebooks, newest (highest id) first, then all smartphones
	if len(got) != 8 {
		t.Fatalf("want 8 products, got %d", len(got))
	}
	for i := 0; i < 5; i++ {
		if got[i].ProductKind() != domain.KindNotebook {
			t.Fatalf("pos %d: want notebook, got %v", i, kindsOf(got))
		}
	}
	if got[0].ProductID() != 6 || got[4].ProductID() != 2 {
		t.Fatalf("notebooks not newest-first: %v", got)
	}
	for i := 5; i < 8; i++ {
		if got[i].ProductKind() != domain.KindSmartphone {
			t.Fatalf("pos %d: want smartphone, got %v", i, kindsOf(got))
		}
	}
	if got[5].ProductID() != 3 || got[7].ProductID() != 1 {
		t.Fatalf("smartphones not newest-first: %v", got)
	}
}

func TestLatestProductsPreferredKindFirst(t *testing.T) {
	svc := newCatalogSvc(memdbCatalog(t))

	got, err := svc.LatestProducts([]domain.Kind{domain.KindNotebook, domain.KindSmartphone}, domain.KindSmartphone)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8 {
		t.Fatalf("want 8 products, got %d", len(got))
	}
	// stable partition: smartphones first, each group keeping its order
	wantIDs := []int64{3, 2, 1, 6, 5, 4, 3, 2}
	for i, p := range got {
		if i < 3 && p.ProductKind() != domain.KindSmartphone {
			t.Fatalf("pos %d: want smartphone, got %v", i, kindsOf(got))
		}
		if i >= 3 && p.ProductKind() != domain.KindNotebook {
			t.Fatalf("pos %d: want notebook, got %v", i, kindsOf(got))
		}
		if p.ProductID() != wantIDs[i] {
			t.Fatalf("pos %d: want id %d, got %d", i, wantIDs[i], p.ProductID())
		}
	}
}

func TestLatestProductsUnrequestedPreferenceIgnored(t *testing.T) {
	svc := newCatalogSvc(memdbCatalog(t))

	got, err := svc.LatestProducts([]domain.Kind{domain.KindNotebook}, domain.KindSmartphone)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("want 5 notebooks, got %d", len(got))
	}
	if got[0].ProductKind() != domain.KindNotebook {
		t.Fatalf("preference for unrequested kind reordered result: %v", kindsOf(got))
	}
}

func TestCategoryProductsScopedToCategory(t *testing.T) {
	db := memdbCatalog(t)
	// a notebook parked under an unrelated category must not leak into the page
	db.MustExec(`INSERT INTO notebooks(category_id,title,slug,price) VALUES(99,'Stray','stray-notebook',100)`)
	svc := newCatalogSvc(db)

	cat, err := svc.CategoryBySlug("notebooks")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.CategoryProducts(cat)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Fatalf("want 6 notebooks in category, got %d", len(got))
	}
	for _, p := range got {
		if p.ProductKind() != domain.KindNotebook {
			t.Fatalf("foreign kind in category listing: %v", kindsOf(got))
		}
		if p.ProductTitle() == "Stray" {
			t.Fatal("product from another category listed")
		}
	}
}

func TestSidebarCounts(t *testing.T) {
	svc := newCatalogSvc(memdbCatalog(t))

	entries, err := svc.Sidebar()
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]services.SidebarEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if e := byName["Ноутбуки"]; e.Count != 6 || e.URL != "/category/notebooks" {
		t.Fatalf("notebooks entry wrong: %+v", e)
	}
	if e := byName["Смартфоны"]; e.Count != 3 || e.URL != "/category/smartphones" {
		t.Fatalf("smartphones entry wrong: %+v", e)
	}
}

func TestSidebarUnknownCategoryFails(t *testing.T) {
	db := memdbCatalog(t)
	db.MustExec(`INSERT INTO categories(name,slug) VALUES('Телевизоры','televisions')`)
	svc := newCatalogSvc(db)

	_, err := svc.Sidebar()
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("want ErrUnknownCategory, got %v", err)
	}
}
