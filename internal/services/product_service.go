package services

import (
	"os"
	"path/filepath"

	"techmart/internal/domain"
	"techmart/internal/imaging"
	"techmart/internal/repos"
)

// ProductService owns the product save pathway. Every save, create or edit,
// with or without a fresh upload, runs the image through the normalizer
// before anything is persisted; a decode failure aborts the save with no
// partial write.
type ProductService struct {
	Prods        *repos.ProductRepo
	MediaDir     string
	StrictBounds bool
}

func NewProductService(prods *repos.ProductRepo, mediaDir string, strictBounds bool) *ProductService {
	return &ProductService{Prods: prods, MediaDir: mediaDir, StrictBounds: strictBounds}
}

// Upload is the raw image from a multipart form.
type Upload struct {
	Name string
	Data []byte
}

func (s *ProductService) SaveNotebook(p domain.Notebook, up *Upload) (int64, error) {
	img, err := s.saveImage("notebooks", p.Image, up)
	if err != nil {
		return 0, err
	}
	p.Image = img
	if p.ID == 0 {
		return s.Prods.CreateNotebook(p)
	}
	return p.ID, s.Prods.UpdateNotebook(p)
}

func (s *ProductService) SaveSmartphone(p domain.Smartphone, up *Upload) (int64, error) {
	img, err := s.saveImage("smartphones", p.Image, up)
	if err != nil {
		return 0, err
	}
	p.Image = img
	if p.ID == 0 {
		return s.Prods.CreateSmartphone(p)
	}
	return p.ID, s.Prods.UpdateSmartphone(p)
}

// saveImage normalizes either the fresh upload or, on attribute-only edits,
// the bytes already on disk, and writes the result under MediaDir. Returns
// the media-relative path to store on the row.
func (s *ProductService) saveImage(dir, current string, up *Upload) (string, error) {
	var src []byte
	var rel string

	switch {
	case up != nil:
		if s.StrictBounds {
			if err := imaging.CheckBounds(up.Data); err != nil {
				return "", err
			}
		}
		src = up.Data
		rel = filepath.Join(dir, imaging.StoredName(up.Name))
	case current != "":
		b, err := os.ReadFile(filepath.Join(s.MediaDir, current))
		if err != nil {
			return "", err
		}
		src = b
		rel = current
	default:
		// nothing uploaded and nothing stored; leave the field empty
		return "", nil
	}

	out, err := imaging.Normalize(src)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.MediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, out, 0644); err != nil {
		return "", err
	}
	return rel, nil
}
