package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	CreatedAt string `db:"created_at"`
}

// URL returns the canonical category page path.
func (c Category) URL() string { return "/category/" + c.Slug }

// Product is the column core shared by every concrete product kind.
type Product struct {
	ID          int64           `db:"id"`
	CategoryID  int64           `db:"category_id"`
	Title       string          `db:"title"`
	Slug        string          `db:"slug"`
	Image       string          `db:"image"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	CreatedAt   string          `db:"created_at"`
}

type Notebook struct {
	Product
	Diagonal          string `db:"diagonal"`
	DisplayType       string `db:"display_type"`
	Processor         string `db:"processor"`
	RAM               string `db:"ram"`
	Video             string `db:"video"`
	TimeWithoutCharge string `db:"time_without_charge"`
}

func (n Notebook) ProductKind() Kind             { return KindNotebook }
func (n Notebook) ProductID() int64              { return n.ID }
func (n Notebook) ProductTitle() string          { return n.Title }
func (n Notebook) ProductPrice() decimal.Decimal { return n.Price }
func (n Notebook) URL() string                   { return "/products/notebook/" + n.Slug }

type Smartphone struct {
	Product
	Diagonal     string `db:"diagonal"`
	Resolution   string `db:"resolution"`
	Processor    string `db:"processor"`
	RAM          string `db:"ram"`
	Accum        string `db:"accum"`
	SD           bool   `db:"sd"`
	MemoryVolume string `db:"memory_volume"`
	MainCamera   string `db:"main_camera"`
	FrontCamera  string `db:"front_camera"`
}

func (s Smartphone) ProductKind() Kind             { return KindSmartphone }
func (s Smartphone) ProductID() int64              { return s.ID }
func (s Smartphone) ProductTitle() string          { return s.Title }
func (s Smartphone) ProductPrice() decimal.Decimal { return s.Price }
func (s Smartphone) URL() string                   { return "/products/smartphone/" + s.Slug }

// Priceable is what cart and catalog aggregation need from any product kind.
type Priceable interface {
	ProductKind() Kind
	ProductID() int64
	ProductTitle() string
	ProductPrice() decimal.Decimal
	URL() string
}

type Customer struct {
	ID          int64  `db:"id"`
	UserID      string `db:"user_id"`
	PhoneNumber string `db:"phone_number"`
	Address     string `db:"address"`
	CreatedAt   string `db:"created_at"`
}

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

type Order struct {
	ID         string `db:"id"`
	CustomerID int64  `db:"customer_id"`
	CartID     string `db:"cart_id"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}
