package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"techmart/internal/config"
	"techmart/internal/http/handlers"
	"techmart/internal/repos"
	"techmart/internal/services"
)

// newStoreApp builds the storefront routes against a seeded in-memory DB.
// CSRF middleware is deliberately left out; these tests target handler
// behavior, not middleware.
func newStoreApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{DBDSN: ":memory:", MediaDir: t.TempDir()}
	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg, authSvc)
	app.Get("/", deps.CategoryHandler.Home)
	app.Get("/category/:slug", deps.CategoryHandler.List)
	app.Get("/products/:kind/:slug", deps.ProductHandler.Detail)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/qty", deps.CartHandler.SetQuantity)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	return app
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestHomeShowsSidebarCounts(t *testing.T) {
	app := newStoreApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	s := body(t, resp)
	// seed ships two products per kind
	if !strings.Contains(s, "Ноутбуки (2)") || !strings.Contains(s, "Смартфоны (2)") {
		t.Fatalf("sidebar counts missing: %s", s)
	}
	// smartphones lead the latest-products list
	if si, ni := strings.Index(s, "galaxy-s21"), strings.Index(s, "thinkpad-x1-carbon"); si < 0 || ni < 0 || si > ni {
		t.Fatalf("smartphone preference not applied (smartphone@%d notebook@%d)", si, ni)
	}
}

func TestProductDetailRendersSpecTable(t *testing.T) {
	app := newStoreApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products/smartphone/galaxy-s21", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	s := body(t, resp)
	if !strings.Contains(s, "<td>Слот для карты памяти</td><td>Да</td>") {
		t.Fatalf("spec table missing SD row: %s", s)
	}
}

func TestProductDetailUnknownKind404(t *testing.T) {
	app := newStoreApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products/toaster/galaxy-s21", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestCartAddThenView(t *testing.T) {
	app := newStoreApp(t)

	form := strings.NewReader("kind=smartphone&productId=1&qty=2")
	req := httptest.NewRequest("POST", "/cart", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("want redirect after add, got %d: %s", resp.StatusCode, body(t, resp))
	}
	var sid string
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			sid = ck.Value
		}
	}
	if sid == "" {
		t.Fatal("no session cookie issued")
	}

	view := httptest.NewRequest("GET", "/cart", nil)
	view.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(view)
	if err != nil {
		t.Fatal(err)
	}
	s := body(t, resp)
	// seeded smartphone #1 costs 449.99; qty 2
	if !strings.Contains(s, "899.98") {
		t.Fatalf("cart subtotal missing: %s", s)
	}
}
