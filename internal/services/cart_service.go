package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"techmart/internal/domain"
	"techmart/internal/repos"
)

var (
	// ErrCartFinalized rejects any mutation of a cart already flipped to in_order.
	ErrCartFinalized = errors.New("cart is already in an order")
	// ErrItemNotInCart rejects line-item mutation through a cart that does not
	// own the item.
	ErrItemNotInCart = errors.New("line item does not belong to this cart")
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// EnsureCart finds or creates the single open cart for a customer, or for an
// anonymous session when customerID is zero.
func (s *CartService) EnsureCart(sessionID string, customerID int64) (domain.Cart, error) {
	if customerID != 0 {
		c, err := s.Carts.OpenByCustomer(customerID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, err
		}
		c = domain.Cart{
			ID:         uuid.NewString(),
			SessionID:  sessionID,
			CustomerID: customerID,
			TotalPrice: decimal.Zero,
		}
		return c, s.Carts.Create(c)
	}
	c, err := s.Carts.OpenBySession(sessionID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, err
	}
	c = domain.Cart{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		TotalPrice:  decimal.Zero,
		IsAnonymous: true,
	}
	return c, s.Carts.Create(c)
}

// Add puts qty units of a (kind, id) product into the cart, creating or
// growing its line item. The subtotal is recomputed from the product's
// current price, never taken from input.
func (s *CartService) Add(cart domain.Cart, kind domain.Kind, productID int64, qty int) error {
	if cart.InOrder {
		return ErrCartFinalized
	}
	if qty < 1 {
		qty = 1
	}
	price, err := s.Prods.Price(kind, productID)
	if err != nil {
		return err
	}

	it, err := s.Carts.ItemByRef(cart.ID, kind, productID)
	if err == nil {
		it.Quantity += qty
		it.Subtotal = price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		if err := s.Carts.UpdateItem(it); err != nil {
			return err
		}
		return s.recomputeTotals(cart.ID)
	}

	it = domain.CartItem{
		CartID:      cart.ID,
		CustomerID:  cart.CustomerID,
		ProductKind: kind,
		ProductID:   productID,
		Quantity:    qty,
		Subtotal:    price.Mul(decimal.NewFromInt(int64(qty))),
	}
	if _, err := s.Carts.InsertItem(it); err != nil {
		return err
	}
	return s.recomputeTotals(cart.ID)
}

// SetQuantity replaces a line item's quantity; zero or less removes it.
// The item must belong to cart, so callers can only touch their own lines.
func (s *CartService) SetQuantity(cart domain.Cart, itemID int64, qty int) error {
	it, err := s.Carts.ItemByID(itemID)
	if err != nil {
		return err
	}
	if it.CartID != cart.ID {
		return ErrItemNotInCart
	}
	if err := s.guardOpen(it.CartID); err != nil {
		return err
	}
	if qty < 1 {
		if err := s.Carts.DeleteItem(it.ID); err != nil {
			return err
		}
		return s.recomputeTotals(it.CartID)
	}
	price, err := s.Prods.Price(it.ProductKind, it.ProductID)
	if err != nil {
		return err
	}
	it.Quantity = qty
	it.Subtotal = price.Mul(decimal.NewFromInt(int64(qty)))
	if err := s.Carts.UpdateItem(it); err != nil {
		return err
	}
	return s.recomputeTotals(it.CartID)
}

// RefreshItem re-saves a line item, re-deriving the subtotal from the
// referenced product's current price. Price changes are never cached.
func (s *CartService) RefreshItem(itemID int64) error {
	it, err := s.Carts.ItemByID(itemID)
	if err != nil {
		return err
	}
	if err := s.guardOpen(it.CartID); err != nil {
		return err
	}
	price, err := s.Prods.Price(it.ProductKind, it.ProductID)
	if err != nil {
		return err
	}
	it.Subtotal = price.Mul(decimal.NewFromInt(int64(it.Quantity)))
	if err := s.Carts.UpdateItem(it); err != nil {
		return err
	}
	return s.recomputeTotals(it.CartID)
}

func (s *CartService) RemoveItem(cart domain.Cart, itemID int64) error {
	it, err := s.Carts.ItemByID(itemID)
	if err != nil {
		return err
	}
	if it.CartID != cart.ID {
		return ErrItemNotInCart
	}
	if err := s.guardOpen(it.CartID); err != nil {
		return err
	}
	if err := s.Carts.DeleteItem(it.ID); err != nil {
		return err
	}
	return s.recomputeTotals(it.CartID)
}

func (s *CartService) Clear(cartID string) error {
	if err := s.guardOpen(cartID); err != nil {
		return err
	}
	if err := s.Carts.Clear(cartID); err != nil {
		return err
	}
	return s.recomputeTotals(cartID)
}

// CartLine pairs a stored line item with its resolved product.
type CartLine struct {
	Item    domain.CartItem
	Product domain.Priceable
}

type CartView struct {
	Cart  domain.Cart
	Lines []CartLine
}

func (s *CartService) View(cartID string) (CartView, error) {
	cart, err := s.Carts.Get(cartID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		p, err := s.Prods.ByKindID(it.ProductKind, it.ProductID)
		if err != nil {
			return CartView{}, err
		}
		lines = append(lines, CartLine{Item: it, Product: p})
	}
	return CartView{Cart: cart, Lines: lines}, nil
}

func (s *CartService) guardOpen(cartID string) error {
	cart, err := s.Carts.Get(cartID)
	if err != nil {
		return err
	}
	if cart.InOrder {
		return ErrCartFinalized
	}
	return nil
}

// recomputeTotals rederives the cart aggregates from its line items. Runs
// after every membership or quantity change; the stored aggregate is never
// left stale.
func (s *CartService) recomputeTotals(cartID string) error {
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return err
	}
	count := 0
	total := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		total = total.Add(it.Subtotal)
	}
	return s.Carts.SetTotals(cartID, count, total)
}
