package services

import (
	"errors"

	"github.com/google/uuid"

	"techmart/internal/domain"
	"techmart/internal/repos"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService struct {
	Carts  *repos.CartRepo
	Cart   *CartService
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, cart *CartService, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Cart: cart, Orders: orders}
}

// Place finalizes the cart: totals are recomputed one last time, the cart is
// flipped to in_order (freezing it against further line-item changes) and an
// order row correlating customer and cart is written.
func (s *OrderService) Place(cart domain.Cart) (string, error) {
	if cart.InOrder {
		return "", ErrCartFinalized
	}
	items, err := s.Carts.Items(cart.ID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	for _, it := range items {
		if err := s.Cart.RefreshItem(it.ID); err != nil {
			return "", err
		}
	}
	if err := s.Carts.Finalize(cart.ID); err != nil {
		return "", err
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(orderID, cart.CustomerID, cart.ID); err != nil {
		return "", err
	}
	return orderID, nil
}
