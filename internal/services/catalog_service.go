package services

import (
	"techmart/internal/domain"
	"techmart/internal/repos"
)

// How many newest rows each kind contributes to the main page.
const latestPerKind = 5

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// LatestProducts merges the newest items of the requested kinds into one
// list, concatenated in request order, each kind's slice newest-first.
// When preferred names a requested, registered kind, the result is stably
// partitioned so that kind's items come first; relative order inside both
// groups is untouched.
func (s *CatalogService) LatestProducts(kinds []domain.Kind, preferred domain.Kind) ([]domain.Priceable, error) {
	var products []domain.Priceable
	preferredRequested := false
	for _, k := range kinds {
		rows, err := s.Prods.Latest(k, latestPerKind)
		if err != nil {
			return nil, err
		}
		products = append(products, rows...)
		if k == preferred {
			preferredRequested = true
		}
	}

	if preferred != "" && preferredRequested && domain.Registered(string(preferred)) {
		head := make([]domain.Priceable, 0, len(products))
		tail := make([]domain.Priceable, 0, len(products))
		for _, p := range products {
			if p.ProductKind() == preferred {
				head = append(head, p)
			} else {
				tail = append(tail, p)
			}
		}
		products = append(head, tail...)
	}
	return products, nil
}

// SidebarEntry is one row of the category navigation.
type SidebarEntry struct {
	Name  string
	URL   string
	Count int
}

// Sidebar returns every category with the count of its kind's products.
// A category whose slug has no registered kind is a hard lookup failure.
func (s *CatalogService) Sidebar() ([]SidebarEntry, error) {
	cats, err := s.Cats.List()
	if err != nil {
		return nil, err
	}
	out := make([]SidebarEntry, 0, len(cats))
	for _, c := range cats {
		info, err := domain.KindForCategorySlug(c.Slug)
		if err != nil {
			return nil, err
		}
		n, err := s.Prods.CountInCategory(info.Kind, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SidebarEntry{Name: c.Name, URL: c.URL(), Count: n})
	}
	return out, nil
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CategoryBySlug(slug string) (domain.Category, error) {
	return s.Cats.BySlug(slug)
}

// CategoryProducts lists a category page: the rows of the category's
// registered kind scoped to that category.
func (s *CatalogService) CategoryProducts(cat domain.Category) ([]domain.Priceable, error) {
	info, err := domain.KindForCategorySlug(cat.Slug)
	if err != nil {
		return nil, err
	}
	return s.Prods.ListInCategory(info.Kind, cat.ID)
}

// ProductDetail resolves a catalog detail URL: kind segment plus product slug.
func (s *CatalogService) ProductDetail(kindName, slug string) (domain.Priceable, error) {
	info, err := domain.KindByName(kindName)
	if err != nil {
		return nil, err
	}
	return s.Prods.ByKindSlug(info.Kind, slug)
}
