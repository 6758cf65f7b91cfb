package repos

import (
	"github.com/jmoiron/sqlx"

	"techmart/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, user_id, phone_number, address, created_at`

func (r *CustomerRepo) ByID(id int64) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	return c, err
}

func (r *CustomerRepo) ByUserID(userID string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE user_id = ?`, userID)
	return c, err
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var out []domain.Customer
	err := r.db.Select(&out, `SELECT `+customerCols+` FROM customers ORDER BY id`)
	return out, err
}

func (r *CustomerRepo) Create(c domain.Customer) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO customers(user_id, phone_number, address) VALUES(?,?,?)`,
		c.UserID, c.PhoneNumber, c.Address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CustomerRepo) Update(c domain.Customer) error {
	_, err := r.db.Exec(`UPDATE customers SET phone_number=?, address=? WHERE id=?`,
		c.PhoneNumber, c.Address, c.ID)
	return err
}
