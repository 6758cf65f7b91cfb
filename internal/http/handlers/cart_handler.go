package handlers

import (
	"database/sql"
	"errors"

	"techmart/internal/domain"
	applog "techmart/internal/log"
	"techmart/internal/repos"
	"techmart/internal/services"
	"techmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart      *services.CartService
	Customers *repos.CustomerRepo
}

// customerID resolves the logged-in user to a customer row; zero for
// anonymous visitors.
func (h *CartHandler) customerID(c *fiber.Ctx) int64 {
	u, ok := c.Locals("user").(*domain.User)
	if !ok || u == nil {
		return 0
	}
	cust, err := h.Customers.ByUserID(u.ID)
	if err != nil {
		return 0
	}
	return cust.ID
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	cv, err := h.Cart.View(cart.ID)
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	kind, okKind := validate.Kind(c.FormValue("kind"))
	productID, okID := validate.ID(c.FormValue("productId"))
	qty := validate.Qty(c.FormValue("qty"))
	if !okKind || !okID {
		return c.Status(400).SendString("missing kind or productId")
	}
	info, err := domain.KindByName(kind)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	if err := h.Cart.Add(cart, info.Kind, productID, qty); err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"kind": kind, "product_id": productID})
		return c.Status(500).SendString(err.Error())
	}
	applog.Info(c, "cart.add", map[string]any{"kind": kind, "product_id": productID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.FormValue("itemId"))
	if !ok {
		return c.Status(400).SendString("missing itemId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	sid := ensureSID(c)
	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	if err := h.Cart.SetQuantity(cart, itemID, qty); err != nil {
		return h.itemMutationError(c, err, itemID)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	itemID, ok := validate.ID(c.FormValue("itemId"))
	if !ok {
		return c.Status(400).SendString("missing itemId")
	}

	sid := ensureSID(c)
	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	if err := h.Cart.RemoveItem(cart, itemID); err != nil {
		return h.itemMutationError(c, err, itemID)
	}
	return c.Redirect("/cart")
}

// itemMutationError maps line-item mutation failures. Items outside the
// caller's cart and unknown items both come back as a plain 404.
func (h *CartHandler) itemMutationError(c *fiber.Ctx, err error, itemID int64) error {
	switch {
	case errors.Is(err, services.ErrItemNotInCart):
		applog.Security(c, "access.denied.cart_item", map[string]any{"item_id": itemID})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	case errors.Is(err, sql.ErrNoRows):
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	case errors.Is(err, services.ErrCartFinalized):
		return c.Status(409).SendString("cart already placed")
	}
	return c.Status(500).SendString(err.Error())
}
