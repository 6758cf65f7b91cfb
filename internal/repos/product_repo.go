package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"techmart/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const notebookCols = `
  id, category_id, title, slug, image, COALESCE(description,'') AS description,
  price, diagonal, display_type, processor, ram, video, time_without_charge, created_at`

const smartphoneCols = `
  id, category_id, title, slug, image, COALESCE(description,'') AS description,
  price, diagonal, resolution, processor, ram, accum, sd, memory_volume,
  main_camera, front_camera, created_at`

// ---------- Notebooks ----------

func (r *ProductRepo) LatestNotebooks(limit int) ([]domain.Notebook, error) {
	var out []domain.Notebook
	err := r.db.Select(&out, `SELECT `+notebookCols+` FROM notebooks ORDER BY id DESC LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) ListNotebooks(categoryID int64) ([]domain.Notebook, error) {
	var out []domain.Notebook
	err := r.db.Select(&out, `SELECT `+notebookCols+` FROM notebooks WHERE category_id = ? ORDER BY id DESC`, categoryID)
	return out, err
}

func (r *ProductRepo) NotebookByID(id int64) (domain.Notebook, error) {
	var p domain.Notebook
	err := r.db.Get(&p, `SELECT `+notebookCols+` FROM notebooks WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) NotebookBySlug(slug string) (domain.Notebook, error) {
	var p domain.Notebook
	err := r.db.Get(&p, `SELECT `+notebookCols+` FROM notebooks WHERE slug = ?`, slug)
	return p, err
}

func (r *ProductRepo) CreateNotebook(p domain.Notebook) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO notebooks(category_id,title,slug,image,description,price,
	    diagonal,display_type,processor,ram,video,time_without_charge)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.CategoryID, p.Title, p.Slug, p.Image, p.Description, p.Price,
		p.Diagonal, p.DisplayType, p.Processor, p.RAM, p.Video, p.TimeWithoutCharge)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) UpdateNotebook(p domain.Notebook) error {
	_, err := r.db.Exec(`
	  UPDATE notebooks SET category_id=?, title=?, slug=?, image=?, description=?, price=?,
	    diagonal=?, display_type=?, processor=?, ram=?, video=?, time_without_charge=?
	  WHERE id=?
	`, p.CategoryID, p.Title, p.Slug, p.Image, p.Description, p.Price,
		p.Diagonal, p.DisplayType, p.Processor, p.RAM, p.Video, p.TimeWithoutCharge, p.ID)
	return err
}

func (r *ProductRepo) DeleteNotebook(id int64) error {
	_, err := r.db.Exec(`DELETE FROM notebooks WHERE id=?`, id)
	return err
}

// ---------- Smartphones ----------

func (r *ProductRepo) LatestSmartphones(limit int) ([]domain.Smartphone, error) {
	var out []domain.Smartphone
	err := r.db.Select(&out, `SELECT `+smartphoneCols+` FROM smartphones ORDER BY id DESC LIMIT ?`, limit)
	return out, err
}

func (r *ProductRepo) ListSmartphones(categoryID int64) ([]domain.Smartphone, error) {
	var out []domain.Smartphone
	err := r.db.Select(&out, `SELECT `+smartphoneCols+` FROM smartphones WHERE category_id = ? ORDER BY id DESC`, categoryID)
	return out, err
}

func (r *ProductRepo) SmartphoneByID(id int64) (domain.Smartphone, error) {
	var p domain.Smartphone
	err := r.db.Get(&p, `SELECT `+smartphoneCols+` FROM smartphones WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) SmartphoneBySlug(slug string) (domain.Smartphone, error) {
	var p domain.Smartphone
	err := r.db.Get(&p, `SELECT `+smartphoneCols+` FROM smartphones WHERE slug = ?`, slug)
	return p, err
}

func (r *ProductRepo) CreateSmartphone(p domain.Smartphone) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO smartphones(category_id,title,slug,image,description,price,
	    diagonal,resolution,processor,ram,accum,sd,memory_volume,main_camera,front_camera)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.CategoryID, p.Title, p.Slug, p.Image, p.Description, p.Price,
		p.Diagonal, p.Resolution, p.Processor, p.RAM, p.Accum, p.SD,
		p.MemoryVolume, p.MainCamera, p.FrontCamera)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) UpdateSmartphone(p domain.Smartphone) error {
	_, err := r.db.Exec(`
	  UPDATE smartphones SET category_id=?, title=?, slug=?, image=?, description=?, price=?,
	    diagonal=?, resolution=?, processor=?, ram=?, accum=?, sd=?, memory_volume=?,
	    main_camera=?, front_camera=?
	  WHERE id=?
	`, p.CategoryID, p.Title, p.Slug, p.Image, p.Description, p.Price,
		p.Diagonal, p.Resolution, p.Processor, p.RAM, p.Accum, p.SD,
		p.MemoryVolume, p.MainCamera, p.FrontCamera, p.ID)
	return err
}

func (r *ProductRepo) DeleteSmartphone(id int64) error {
	_, err := r.db.Exec(`DELETE FROM smartphones WHERE id=?`, id)
	return err
}

// ---------- Cross-kind access ----------

// Latest returns the newest products of one kind, newest first.
func (r *ProductRepo) Latest(kind domain.Kind, limit int) ([]domain.Priceable, error) {
	switch kind {
	case domain.KindNotebook:
		rows, err := r.LatestNotebooks(limit)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Priceable, len(rows))
		for i, p := range rows {
			out[i] = p
		}
		return out, nil
	case domain.KindSmartphone:
		rows, err := r.LatestSmartphones(limit)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Priceable, len(rows))
		for i, p := range rows {
			out[i] = p
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// ListInCategory returns one kind's products inside a category, newest first.
func (r *ProductRepo) ListInCategory(kind domain.Kind, categoryID int64) ([]domain.Priceable, error) {
	switch kind {
	case domain.KindNotebook:
		rows, err := r.ListNotebooks(categoryID)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Priceable, len(rows))
		for i, p := range rows {
			out[i] = p
		}
		return out, nil
	case domain.KindSmartphone:
		rows, err := r.ListSmartphones(categoryID)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Priceable, len(rows))
		for i, p := range rows {
			out[i] = p
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// ByKindSlug resolves a product detail URL (kind segment + product slug).
func (r *ProductRepo) ByKindSlug(kind domain.Kind, slug string) (domain.Priceable, error) {
	switch kind {
	case domain.KindNotebook:
		return r.NotebookBySlug(slug)
	case domain.KindSmartphone:
		return r.SmartphoneBySlug(slug)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// ByKindID resolves a line item's weak (kind, id) reference.
func (r *ProductRepo) ByKindID(kind domain.Kind, id int64) (domain.Priceable, error) {
	switch kind {
	case domain.KindNotebook:
		return r.NotebookByID(id)
	case domain.KindSmartphone:
		return r.SmartphoneByID(id)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// Price returns the current unit price behind a (kind, id) reference.
func (r *ProductRepo) Price(kind domain.Kind, id int64) (decimal.Decimal, error) {
	p, err := r.ByKindID(kind, id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.ProductPrice(), nil
}

// CountInCategory counts rows of one kind inside one category.
func (r *ProductRepo) CountInCategory(kind domain.Kind, categoryID int64) (int, error) {
	var table string
	switch kind {
	case domain.KindNotebook:
		table = "notebooks"
	case domain.KindSmartphone:
		table = "smartphones"
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM `+table+` WHERE category_id = ?`, categoryID)
	return n, err
}
