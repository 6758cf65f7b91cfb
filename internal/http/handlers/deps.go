package handlers

import (
	"techmart/internal/config"
	"techmart/internal/repos"
	"techmart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	custRepo := repos.NewCustomerRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, cartSvc, orderRepo)
	prodSvc := services.NewProductService(prodRepo, cfg.MediaDir, cfg.StrictImageBounds)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Customers: custRepo},
		OrderHandler:    &OrderHandler{Cart: cartSvc, Order: orderSvc, Orders: orderRepo, Customers: custRepo},
		AdminHandler: &AdminHandler{
			Cats:      catRepo,
			Prods:     prodRepo,
			Products:  prodSvc,
			Carts:     cartRepo,
			Customers: custRepo,
			Orders:    orderRepo,
		},
	}
}
