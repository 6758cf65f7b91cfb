package handlers

import (
	applog "techmart/internal/log"
	"techmart/internal/services"
	"techmart/internal/spec"
	"techmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// Detail serves /products/:kind/:slug.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	kind, okKind := validate.Kind(c.Params("kind"))
	slug, okSlug := validate.Slug(c.Params("slug"))
	if !okKind || !okSlug {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.ProductDetail(kind, slug)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	table, err := spec.Render(p)
	if err != nil {
		applog.Error(c, "product.spec.fail", err, map[string]any{"kind": kind, "slug": slug})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load product"})
	}
	return render(c, "product", fiber.Map{"P": p, "SpecTable": table})
}
