package repos

import (
	"github.com/jmoiron/sqlx"

	"techmart/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(id string, customerID int64, cartID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, customer_id, cart_id, status, created_at)
	  VALUES(?,?,?,'PLACED',CURRENT_TIMESTAMP)
	`, id, customerID, cartID)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT id, customer_id, cart_id, status, created_at FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, customer_id, cart_id, status, created_at
	  FROM orders ORDER BY datetime(created_at) DESC LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByCustomer(customerID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, customer_id, cart_id, status, created_at
	  FROM orders WHERE customer_id = ? ORDER BY datetime(created_at) DESC
	`, customerID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
