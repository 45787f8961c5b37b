package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/txwizard/internal/catalog"
)

const (
	metaCredential = "credential"
	metaSupportURL = "support_url"
)

// CatalogRepo reads and replaces the stored catalog.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// Empty reports whether no networks have been stored yet.
func (r *CatalogRepo) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM networks`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// Load reads the whole catalog.
func (r *CatalogRepo) Load(ctx context.Context) (catalog.Catalog, error) {
	var c catalog.Catalog

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, short_label FROM networks ORDER BY sort_order, id`)
	if err != nil {
		return c, fmt.Errorf("load networks: %w", err)
	}
	for rows.Next() {
		var n catalog.Network
		if err := rows.Scan(&n.ID, &n.Name, &n.Short); err != nil {
			rows.Close()
			return c, err
		}
		c.Networks = append(c.Networks, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return c, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT amount, fee FROM plans ORDER BY sort_order, amount`)
	if err != nil {
		return c, fmt.Errorf("load plans: %w", err)
	}
	for rows.Next() {
		var p catalog.Plan
		if err := rows.Scan(&p.Amount, &p.Fee); err != nil {
			rows.Close()
			return c, err
		}
		c.Plans = append(c.Plans, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return c, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT name, network, address FROM payment_methods ORDER BY sort_order, name`)
	if err != nil {
		return c, fmt.Errorf("load payment methods: %w", err)
	}
	for rows.Next() {
		var m catalog.PaymentMethod
		if err := rows.Scan(&m.Name, &m.Network, &m.Address); err != nil {
			rows.Close()
			return c, err
		}
		c.PaymentMethods = append(c.PaymentMethods, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return c, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT key, value FROM catalog_meta`)
	if err != nil {
		return c, fmt.Errorf("load catalog meta: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return c, err
		}
		switch k {
		case metaCredential:
			c.Credential = v
		case metaSupportURL:
			c.SupportURL = v
		}
	}
	return c, rows.Err()
}

// Replace deletes the stored catalog and writes c inside tx.
func (r *CatalogRepo) Replace(ctx context.Context, tx *sql.Tx, c catalog.Catalog) error {
	for _, table := range []string{"networks", "plans", "payment_methods", "catalog_meta"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, n := range c.Networks {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO networks(id, name, short_label, sort_order) VALUES (?, ?, ?, ?)`,
			n.ID, n.Name, n.Short, i); err != nil {
			return fmt.Errorf("insert network %s: %w", n.ID, err)
		}
	}
	for i, p := range c.Plans {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO plans(amount, fee, sort_order) VALUES (?, ?, ?)`,
			p.Amount, p.Fee, i); err != nil {
			return fmt.Errorf("insert plan %s: %w", p.Amount, err)
		}
	}
	for i, m := range c.PaymentMethods {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO payment_methods(name, network, address, sort_order) VALUES (?, ?, ?, ?)`,
			m.Name, m.Network, m.Address, i); err != nil {
			return fmt.Errorf("insert payment method %s: %w", m.Name, err)
		}
	}
	meta := map[string]string{metaCredential: c.Credential, metaSupportURL: c.SupportURL}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_meta(key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, k, v); err != nil {
			return fmt.Errorf("insert catalog meta %s: %w", k, err)
		}
	}
	return nil
}
