package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL completo del motor. Idempotente: se aplica en cada arranque.
// Los índices únicos parciales (WHERE superseded_at IS NULL) son los que
// garantizan un único registro activo por entidad y período.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
    id          VARCHAR(36) PRIMARY KEY,
    name        TEXT NOT NULL,
    ruc         VARCHAR(13) NOT NULL UNIQUE,
    address     TEXT NOT NULL DEFAULT '',
    phone       TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    status      VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
    id            VARCHAR(36) PRIMARY KEY,
    company_id    VARCHAR(36) NOT NULL REFERENCES companies(id),
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    role          VARCHAR(20) NOT NULL,
    status        VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
    id           VARCHAR(36) PRIMARY KEY,
    company_id   VARCHAR(36) NOT NULL REFERENCES companies(id),
    sku          VARCHAR(50) NOT NULL,
    name         TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    price        NUMERIC(14,2) NOT NULL DEFAULT 0,
    unit_cost    NUMERIC(14,4) NOT NULL DEFAULT 0,
    unit_measure VARCHAR(20) NOT NULL DEFAULT 'unidad',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (company_id, sku)
);

CREATE TABLE IF NOT EXISTS lots (
    id              VARCHAR(36) PRIMARY KEY,
    company_id      VARCHAR(36) NOT NULL REFERENCES companies(id),
    product_id      VARCHAR(36) NOT NULL REFERENCES products(id),
    lot_number      VARCHAR(50) NOT NULL,
    expiration_date DATE NOT NULL,
    received_qty    NUMERIC(14,4) NOT NULL DEFAULT 0,
    consumed_qty    NUMERIC(14,4) NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (product_id, lot_number)
);
CREATE INDEX IF NOT EXISTS idx_lots_product_fefo ON lots (product_id, expiration_date, created_at);

CREATE TABLE IF NOT EXISTS lot_movements (
    id             VARCHAR(36) PRIMARY KEY,
    transaction_id VARCHAR(36) NOT NULL,
    lot_id         VARCHAR(36) NOT NULL REFERENCES lots(id),
    product_id     VARCHAR(36) NOT NULL REFERENCES products(id),
    type           VARCHAR(20) NOT NULL,
    quantity       NUMERIC(14,4) NOT NULL,
    reference      TEXT NOT NULL DEFAULT '',
    date           TIMESTAMPTZ NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_by     VARCHAR(36) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lot_movements_lot_date ON lot_movements (lot_id, date);
CREATE INDEX IF NOT EXISTS idx_lot_movements_product_date ON lot_movements (product_id, date);

CREATE TABLE IF NOT EXISTS lot_snapshots (
    id            VARCHAR(36) PRIMARY KEY,
    lot_id        VARCHAR(36) NOT NULL REFERENCES lots(id),
    period        CHAR(7) NOT NULL,
    received_qty  NUMERIC(14,4) NOT NULL,
    consumed_qty  NUMERIC(14,4) NOT NULL,
    remaining_qty NUMERIC(14,4) NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    superseded_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_lot_snapshots_active
    ON lot_snapshots (lot_id, period) WHERE superseded_at IS NULL;

CREATE TABLE IF NOT EXISTS assets (
    id                   VARCHAR(36) PRIMARY KEY,
    company_id           VARCHAR(36) NOT NULL REFERENCES companies(id),
    name                 TEXT NOT NULL,
    code                 VARCHAR(50) NOT NULL,
    acquisition_cost     NUMERIC(14,2) NOT NULL,
    residual_value       NUMERIC(14,2) NOT NULL DEFAULT 0,
    useful_life_months   INT NOT NULL,
    monthly_depreciation NUMERIC(14,2) NOT NULL,
    accumulated_dep      NUMERIC(14,2) NOT NULL DEFAULT 0,
    acquisition_date     DATE NOT NULL,
    disposed_at          TIMESTAMPTZ,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (company_id, code)
);

CREATE TABLE IF NOT EXISTS depreciation_entries (
    id                VARCHAR(36) PRIMARY KEY,
    asset_id          VARCHAR(36) NOT NULL REFERENCES assets(id),
    period            CHAR(7) NOT NULL,
    amount            NUMERIC(14,2) NOT NULL,
    accumulated_after NUMERIC(14,2) NOT NULL,
    book_value_after  NUMERIC(14,2) NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    superseded_at     TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_depreciation_entries_active
    ON depreciation_entries (asset_id, period) WHERE superseded_at IS NULL;

CREATE TABLE IF NOT EXISTS employees (
    id             VARCHAR(36) PRIMARY KEY,
    company_id     VARCHAR(36) NOT NULL REFERENCES companies(id),
    name           TEXT NOT NULL,
    identification VARCHAR(20) NOT NULL,
    position       TEXT NOT NULL DEFAULT '',
    base_salary    NUMERIC(14,2) NOT NULL,
    hire_date      DATE NOT NULL,
    active         BOOLEAN NOT NULL DEFAULT true,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (company_id, identification)
);

CREATE TABLE IF NOT EXISTS payroll_runs (
    id                     VARCHAR(36) PRIMARY KEY,
    employee_id            VARCHAR(36) NOT NULL REFERENCES employees(id),
    period                 CHAR(7) NOT NULL,
    base_salary            NUMERIC(14,2) NOT NULL,
    overtime               NUMERIC(14,2) NOT NULL DEFAULT 0,
    bonuses                NUMERIC(14,2) NOT NULL DEFAULT 0,
    gross_pay              NUMERIC(14,2) NOT NULL,
    statutory_contribution NUMERIC(14,2) NOT NULL,
    advances               NUMERIC(14,2) NOT NULL DEFAULT 0,
    total_deductions       NUMERIC(14,2) NOT NULL,
    net_pay                NUMERIC(14,2) NOT NULL,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_by             VARCHAR(36) NOT NULL,
    superseded_at          TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_payroll_runs_active
    ON payroll_runs (employee_id, period) WHERE superseded_at IS NULL;
`

// EnsureSchema aplica el DDL sobre el pool. Seguro de ejecutar en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
