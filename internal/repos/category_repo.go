package repos

import (
	"github.com/jmoiron/sqlx"

	"techmart/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, slug, created_at FROM categories WHERE slug = ?`, slug)
	return c, err
}

func (r *CategoryRepo) ByID(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, slug, created_at FROM categories WHERE id = ?`, id)
	return c, err
}

// ListBySlug is the admin form filter: notebook forms only offer categories
// with slug "notebooks", smartphone forms only "smartphones".
func (r *CategoryRepo) ListBySlug(slug string) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name, slug, created_at FROM categories WHERE slug = ? ORDER BY name`, slug)
	return out, err
}

func (r *CategoryRepo) Create(name, slug string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name,slug) VALUES(?,?)`, name, slug)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CategoryRepo) Update(id int64, name, slug string) error {
	_, err := r.db.Exec(`UPDATE categories SET name=?, slug=? WHERE id=?`, name, slug, id)
	return err
}

// Delete removes the category and, through the schema's cascade, its products.
func (r *CategoryRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id=?`, id)
	return err
}
