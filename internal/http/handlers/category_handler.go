package handlers

import (
	"techmart/internal/domain"
	applog "techmart/internal/log"
	"techmart/internal/services"
	"techmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// Home shows the category sidebar and the freshest products of every kind,
// smartphones leading.
func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	sidebar, err := h.Catalog.Sidebar()
	if err != nil {
		applog.Error(c, "catalog.sidebar.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load categories"})
	}
	latest, err := h.Catalog.LatestProducts(
		[]domain.Kind{domain.KindNotebook, domain.KindSmartphone}, domain.KindSmartphone)
	if err != nil {
		applog.Error(c, "catalog.latest.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "home", fiber.Map{"Sidebar": sidebar, "Products": latest})
}

// List shows one category's products, addressed by category slug.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	cat, err := h.Catalog.CategoryBySlug(slug)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Category not found"})
	}
	products, err := h.Catalog.CategoryProducts(cat)
	if err != nil {
		applog.Error(c, "catalog.category.fail", err, map[string]any{"slug": slug})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load category"})
	}
	return render(c, "category", fiber.Map{"Category": cat, "Products": products})
}
