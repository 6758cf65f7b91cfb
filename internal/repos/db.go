package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Product kinds: one table per kind, sharing the product column core.
-- Deleting a category removes its products.
CREATE TABLE IF NOT EXISTS notebooks(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image TEXT NOT NULL DEFAULT '',
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  diagonal TEXT NOT NULL DEFAULT '',
  display_type TEXT NOT NULL DEFAULT '',
  processor TEXT NOT NULL DEFAULT '',
  ram TEXT NOT NULL DEFAULT '',
  video TEXT NOT NULL DEFAULT '',
  time_without_charge TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_notebooks_category ON notebooks(category_id);

CREATE TABLE IF NOT EXISTS smartphones(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  image TEXT NOT NULL DEFAULT '',
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  diagonal TEXT NOT NULL DEFAULT '',
  resolution TEXT NOT NULL DEFAULT '',
  processor TEXT NOT NULL DEFAULT '',
  ram TEXT NOT NULL DEFAULT '',
  accum TEXT NOT NULL DEFAULT '',
  sd INTEGER NOT NULL DEFAULT 1,
  memory_volume TEXT NOT NULL DEFAULT '',
  main_camera TEXT NOT NULL DEFAULT '',
  front_camera TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_smartphones_category ON smartphones(category_id);

-- Users & Sessions (admin surface)
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  phone_number TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_user ON customers(user_id);

-- Carts: customer_id 0 means anonymous (session-owned).
-- At most one open (in_order=0) cart per session/customer; lookups go
-- through the open-cart queries, finalized carts stay behind for orders.
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL DEFAULT '',
  customer_id INTEGER NOT NULL DEFAULT 0,
  total_items INTEGER NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  in_order INTEGER NOT NULL DEFAULT 0,
  is_anonymous INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_carts_customer ON carts(customer_id);
CREATE INDEX IF NOT EXISTS idx_carts_session ON carts(session_id);

-- Line items reference products weakly by (kind, id)
CREATE TABLE IF NOT EXISTS cart_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  customer_id INTEGER NOT NULL DEFAULT 0,
  product_kind TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  subtotal NUMERIC NOT NULL,
  UNIQUE(cart_id, product_kind, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);

-- Orders correlate a customer with a finalized cart
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id INTEGER NOT NULL DEFAULT 0,
  cart_id TEXT NOT NULL REFERENCES carts(id),
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(name,slug) VALUES
	  ('Ноутбуки','notebooks'),
	  ('Смартфоны','smartphones')`)

	tx.MustExec(`INSERT INTO notebooks(category_id,title,slug,image,description,price,diagonal,display_type,processor,ram,video,time_without_charge) VALUES
	  (1,'Lenovo ThinkPad X1 Carbon','thinkpad-x1-carbon','notebooks/thinkpad-x1.jpeg','Business ultrabook',1499.00,'14','IPS','Intel Core i7-1165G7','16GB','Intel Iris Xe','10 часов'),
	  (1,'ASUS ROG Strix G15','rog-strix-g15','notebooks/rog-strix.jpeg','Gaming notebook',1299.99,'15.6','IPS 144Hz','AMD Ryzen 7 5800H','16GB','RTX 3060','6 часов')`)

	tx.MustExec(`INSERT INTO smartphones(category_id,title,slug,image,description,price,diagonal,resolution,processor,ram,accum,sd,memory_volume,main_camera,front_camera) VALUES
	  (2,'Xiaomi Mi 9','xiaomi-mi-9','smartphones/mi9.jpeg','Flagship killer',449.99,'6.39','2340x1080','Snapdragon 855','6GB','3300 mAh',0,'128GB','48MP','20MP'),
	  (2,'Samsung Galaxy S21','galaxy-s21','smartphones/galaxy-s21.jpeg','Flagship',799.99,'6.2','2400x1080','Exynos 2100','8GB','4000 mAh',1,'256GB','64MP','10MP')`)

	return tx.Commit()
}

// seedUsers ensures a demo customer and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-ivan", "ivan@techmart.test", "Ivan", "USER", "Passw0rd!"),
		mk("u-admin", "admin@techmart.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO customers(user_id, phone_number, address)
		SELECT 'u-ivan', '+7 900 000-00-00', 'Москва'
		WHERE NOT EXISTS (SELECT 1 FROM customers WHERE user_id='u-ivan')
	`); err != nil {
		return err
	}

	return tx.Commit()
}
