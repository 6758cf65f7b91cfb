package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"techmart/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, session_id, customer_id, total_items, total_price, in_order, is_anonymous, COALESCE(updated_at,'') AS updated_at`

func (r *CartRepo) Get(cartID string) (domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE id = ?`, cartID)
	return c, err
}

// OpenByCustomer returns the customer's open (not in_order) cart, if any.
func (r *CartRepo) OpenByCustomer(customerID int64) (domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE customer_id = ? AND in_order = 0`, customerID)
	return c, err
}

// OpenBySession returns the open anonymous cart bound to a session, if any.
func (r *CartRepo) OpenBySession(sessionID string) (domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE session_id = ? AND in_order = 0`, sessionID)
	return c, err
}

func (r *CartRepo) Create(c domain.Cart) error {
	_, err := r.db.Exec(`
	  INSERT INTO carts(id, session_id, customer_id, total_items, total_price, in_order, is_anonymous, updated_at)
	  VALUES(?,?,?,?,?,?,?,?)
	`, c.ID, c.SessionID, c.CustomerID, c.TotalItems, c.TotalPrice, c.InOrder, c.IsAnonymous,
		time.Now().Format(time.RFC3339))
	return err
}

func (r *CartRepo) List() ([]domain.Cart, error) {
	var out []domain.Cart
	err := r.db.Select(&out, `SELECT `+cartCols+` FROM carts ORDER BY updated_at DESC`)
	return out, err
}

// SetTotals writes the recomputed aggregates. Totals are always derived from
// the line items by the service, never trusted as stored.
func (r *CartRepo) SetTotals(cartID string, items int, total decimal.Decimal) error {
	_, err := r.db.Exec(`UPDATE carts SET total_items=?, total_price=?, updated_at=? WHERE id=?`,
		items, total, time.Now().Format(time.RFC3339), cartID)
	return err
}

func (r *CartRepo) Finalize(cartID string) error {
	_, err := r.db.Exec(`UPDATE carts SET in_order=1, updated_at=? WHERE id=?`,
		time.Now().Format(time.RFC3339), cartID)
	return err
}

// ---------- Line items ----------

const itemCols = `id, cart_id, customer_id, product_kind, product_id, quantity, subtotal`

func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM cart_items WHERE cart_id = ? ORDER BY id`, cartID)
	return out, err
}

func (r *CartRepo) ItemByID(itemID int64) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `SELECT `+itemCols+` FROM cart_items WHERE id = ?`, itemID)
	return it, err
}

// ItemByRef finds the cart's line item for one (kind, id) product reference.
func (r *CartRepo) ItemByRef(cartID string, kind domain.Kind, productID int64) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `
	  SELECT `+itemCols+` FROM cart_items
	  WHERE cart_id = ? AND product_kind = ? AND product_id = ?
	`, cartID, kind, productID)
	return it, err
}

func (r *CartRepo) InsertItem(it domain.CartItem) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id, customer_id, product_kind, product_id, quantity, subtotal)
	  VALUES(?,?,?,?,?,?)
	`, it.CartID, it.CustomerID, it.ProductKind, it.ProductID, it.Quantity, it.Subtotal)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CartRepo) UpdateItem(it domain.CartItem) error {
	_, err := r.db.Exec(`UPDATE cart_items SET quantity=?, subtotal=? WHERE id=?`,
		it.Quantity, it.Subtotal, it.ID)
	return err
}

func (r *CartRepo) DeleteItem(itemID int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE id=?`, itemID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=?`, cartID)
	return err
}

// ListItems returns every line item, for the admin surface.
func (r *CartRepo) ListItems() ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM cart_items ORDER BY cart_id, id`)
	return out, err
}
