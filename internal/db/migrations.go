package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_type') THEN
			CREATE TYPE user_type AS ENUM ('AUTO', 'AVIA');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'product_status') THEN
			CREATE TYPE product_status AS ENUM ('NOT_LOADED', 'DELIVERED', 'LOADED', 'ON_WAY', 'DONE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'load_status') THEN
			CREATE TYPE load_status AS ENUM ('NOT_PAID', 'PARTIALLY_PAID', 'PAID');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN
			CREATE TYPE payment_status AS ENUM ('SUCCESSFUL', 'DECLINED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'registration_status') THEN
			CREATE TYPE registration_status AS ENUM ('WAITING', 'ACCEPTED', 'NOT_ACCEPTED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		prefix VARCHAR(6) NOT NULL,
		code VARCHAR(16) NOT NULL,
		debt NUMERIC(18,2) NOT NULL DEFAULT 0,
		phone_number VARCHAR(35),
		tg_id VARCHAR(155),
		language VARCHAR(2) NOT NULL DEFAULT 'uz',
		user_type user_type NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		accepted_by_id UUID,
		accepted_time TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_customers_prefix_code ON customers (prefix, code);`,
	`CREATE TABLE IF NOT EXISTS loads (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID NOT NULL REFERENCES customers(id),
		weight NUMERIC(18,3) NOT NULL DEFAULT 0,
		cost NUMERIC(18,2) NOT NULL DEFAULT 0,
		loads_count INTEGER NOT NULL DEFAULT 0,
		status load_status NOT NULL DEFAULT 'NOT_PAID',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		accepted_by_id UUID,
		accepted_time TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// At most one active load per customer, enforced by the storage layer
	// rather than by query convention.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_loads_customer_active ON loads (customer_id) WHERE is_active;`,
	`CREATE INDEX IF NOT EXISTS idx_loads_customer_id ON loads (customer_id);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		barcode VARCHAR(64) NOT NULL,
		customer_id UUID REFERENCES customers(id),
		load_id UUID REFERENCES loads(id),
		status product_status NOT NULL DEFAULT 'NOT_LOADED',
		is_homeless BOOLEAN NOT NULL DEFAULT FALSE,
		accepted_by_china_id UUID,
		accepted_time_china TIMESTAMPTZ,
		accepted_by_tashkent_id UUID,
		accepted_time_tashkent TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_products_barcode ON products (barcode);`,
	`CREATE INDEX IF NOT EXISTS idx_products_customer_status ON products (customer_id, status);`,
	`CREATE INDEX IF NOT EXISTS idx_products_load_id ON products (load_id) WHERE load_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS load_accepted (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		load_id UUID NOT NULL REFERENCES loads(id) ON DELETE CASCADE,
		accepted_by_id UUID NOT NULL,
		accepted_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_load_accepted_load_id ON load_accepted (load_id);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		load_id UUID NOT NULL REFERENCES loads(id),
		customer_id UUID NOT NULL REFERENCES customers(id),
		paid_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		status payment_status,
		is_operator BOOLEAN NOT NULL DEFAULT FALSE,
		comment TEXT,
		operator_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_load_id ON payments (load_id);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments (created_at) WHERE status IS NULL;`,
	`CREATE TABLE IF NOT EXISTS customer_registrations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		customer_id UUID REFERENCES customers(id) ON DELETE SET NULL,
		status registration_status NOT NULL DEFAULT 'WAITING',
		reject_message TEXT,
		step SMALLINT NOT NULL DEFAULT 1,
		done BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS files (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(300),
		path TEXT,
		size DOUBLE PRECISION,
		content_type VARCHAR(100),
		product_id UUID REFERENCES products(id) ON DELETE SET NULL,
		load_id UUID REFERENCES loads(id) ON DELETE SET NULL,
		payment_id UUID REFERENCES payments(id) ON DELETE SET NULL,
		registration_id UUID REFERENCES customer_registrations(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
