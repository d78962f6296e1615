package db

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin','vendor')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS stores (
		id            UUID PRIMARY KEY,
		vendor_id     UUID NOT NULL,
		name          TEXT NOT NULL,
		description   TEXT,
		logo_url      TEXT,
		banner_url    TEXT,
		contact_email TEXT NOT NULL,
		phone         TEXT,
		address       TEXT,
		city          TEXT,
		state         TEXT,
		postal_code   TEXT,
		country       TEXT,
		latitude      DOUBLE PRECISION,
		longitude     DOUBLE PRECISION,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS stores_vendor_id_idx ON stores (vendor_id)`,

	`CREATE TABLE IF NOT EXISTS global_products (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		category_id UUID NOT NULL,
		description TEXT,
		image_url   TEXT,
		sku         TEXT,
		barcode     TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS vendor_products (
		id                UUID PRIMARY KEY,
		store_id          UUID NOT NULL REFERENCES stores(id),
		global_product_id UUID,
		name              TEXT NOT NULL,
		description       TEXT,
		image_url         TEXT,
		local_price       DOUBLE PRECISION NOT NULL CHECK (local_price > 0),
		cost_price        DOUBLE PRECISION CHECK (cost_price > 0),
		stock_count       INTEGER NOT NULL CHECK (stock_count >= 0),
		min_stock_level   INTEGER NOT NULL DEFAULT 0 CHECK (min_stock_level >= 0),
		approval_status   TEXT NOT NULL,
		admin_notes       TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS vendor_products_store_idx ON vendor_products (store_id)`,
	`CREATE INDEX IF NOT EXISTS vendor_products_status_idx ON vendor_products (approval_status)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id           UUID PRIMARY KEY,
		store_id     UUID NOT NULL REFERENCES stores(id),
		total_amount DOUBLE PRECISION NOT NULL CHECK (total_amount > 0),
		items_count  INTEGER NOT NULL CHECK (items_count > 0),
		status       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS sales_store_created_idx ON sales (store_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS sale_items (
		id                UUID PRIMARY KEY,
		sale_id           UUID NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		line_no           INTEGER NOT NULL DEFAULT 0,
		vendor_product_id UUID NOT NULL,
		quantity          INTEGER NOT NULL CHECK (quantity > 0),
		unit_price        DOUBLE PRECISION NOT NULL CHECK (unit_price > 0),
		subtotal          DOUBLE PRECISION NOT NULL
	)`,
}
