package domain

import "github.com/shopspring/decimal"

// CartItem references its product weakly, by (kind, id), not by an owning
// relation. Subtotal is derived and recomputed on every save.
type CartItem struct {
	ID          int64           `db:"id"`
	CartID      string          `db:"cart_id"`
	CustomerID  int64           `db:"customer_id"`
	ProductKind Kind            `db:"product_kind"`
	ProductID   int64           `db:"product_id"`
	Quantity    int             `db:"quantity"`
	Subtotal    decimal.Decimal `db:"subtotal"`
}

type Cart struct {
	ID          string          `db:"id"`
	SessionID   string          `db:"session_id"`
	CustomerID  int64           `db:"customer_id"`
	TotalItems  int             `db:"total_items"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	InOrder     bool            `db:"in_order"`
	IsAnonymous bool            `db:"is_anonymous"`
	UpdatedAt   string          `db:"updated_at"`
}
