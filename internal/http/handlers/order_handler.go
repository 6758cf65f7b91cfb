package handlers

import (
	"errors"

	"techmart/internal/domain"
	applog "techmart/internal/log"
	"techmart/internal/repos"
	"techmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart      *services.CartService
	Order     *services.OrderService
	Orders    *repos.OrderRepo
	Customers *repos.CustomerRepo
}

func (h *OrderHandler) customerID(c *fiber.Ctx) int64 {
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

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	cv, err := h.Cart.View(cart.ID)
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cart, err := h.Cart.EnsureCart(sid, h.customerID(c))
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}

	oid, err := h.Order.Place(cart)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return c.Redirect("/cart")
		case errors.Is(err, services.ErrCartFinalized):
			return c.Status(409).SendString("cart already placed")
		}
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(500).SendString(err.Error())
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": oid})
	return c.Redirect("/order/" + oid)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id := c.Params("id")
	o, err := h.Orders.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	if !h.canView(c, sid, o) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": o.ID})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	cv, err := h.Cart.View(o.CartID)
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "order", fiber.Map{"Order": o, "Cart": cv})
}

// canView limits an order page to its owner. Customer orders match on the
// customer row behind the logged-in user, anonymous orders on the session
// that placed them. Admins see everything.
func (h *OrderHandler) canView(c *fiber.Ctx, sid string, o domain.Order) bool {
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil && u.Role == "ADMIN" {
		return true
	}
	if o.CustomerID != 0 {
		return o.CustomerID == h.customerID(c)
	}
	cart, err := h.Cart.Carts.Get(o.CartID)
	return err == nil && cart.SessionID == sid
}

// History lists the logged-in customer's orders.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	custID := h.customerID(c)
	if custID == 0 {
		return render(c, "orders", fiber.Map{"Orders": nil})
	}
	ords, err := h.Orders.ListByCustomer(custID)
	if err != nil {
		return c.Status(500).SendString(err.Error())
	}
	return render(c, "orders", fiber.Map{"Orders": ords})
}
