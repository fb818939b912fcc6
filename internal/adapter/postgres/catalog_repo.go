package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"emberguard/internal/domain"
)

var _ domain.CatalogSource = (*DB)(nil)

// SeedCatalog inserts cat when the products table is empty. It reports
// whether anything was written.
func (d *DB) SeedCatalog(ctx context.Context, cat *domain.Catalog) (bool, error) {
	var n int
	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(1) FROM products;").Scan(&n); err != nil {
		return false, fmt.Errorf("seed: count products: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback() //nolint:errcheck

	for i, t := range cat.Tasks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO tasks(id, position, title, description, category, priority, resiliency_gain, estimated_cost, time_required, completed) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10);",
			t.ID, i, t.Title, t.Description, string(t.Category), string(t.Priority), t.ResiliencyGain, t.EstimatedCost, t.TimeRequired, t.Completed)
		if err != nil {
			return false, fmt.Errorf("seed task %q: %w", t.ID, err)
		}
	}
	for i, p := range cat.Products {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO products(id, position, name, description, image_url, price, category, rating, review_count, in_stock, features, related_tasks) VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);",
			p.ID, i, p.Name, p.Description, p.ImageURL, p.Price, p.Category, p.Rating, p.ReviewCount, p.InStock,
			pq.Array(nonNil(p.Features)), pq.Array(nonNil(p.RelatedTasks)))
		if err != nil {
			return false, fmt.Errorf("seed product %q: %w", p.ID, err)
		}
	}
	for i, b := range cat.Bundles {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bundles(id, position, name, description, category, original_price, bundle_price, savings) VALUES($1,$2,$3,$4,$5,$6,$7,$8);",
			b.ID, i, b.Name, b.Description, b.Category, b.OriginalPrice, b.BundlePrice, b.Savings)
		if err != nil {
			return false, fmt.Errorf("seed bundle %q: %w", b.ID, err)
		}
		for j, p := range b.Products {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO bundle_products(bundle_id, product_id, position) VALUES($1,$2,$3);", b.ID, p.ID, j); err != nil {
				return false, fmt.Errorf("seed bundle %q product %q: %w", b.ID, p.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// LoadCatalog reads tasks, products and bundles in their stored order.
func (d *DB) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	cat := &domain.Catalog{}
	var err error
	if cat.Tasks, err = d.loadTasks(ctx); err != nil {
		return nil, err
	}
	if cat.Products, err = d.loadProducts(ctx); err != nil {
		return nil, err
	}
	if cat.Bundles, err = d.loadBundles(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (d *DB) loadTasks(ctx context.Context) ([]domain.HardeningTask, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, title, description, category, priority, resiliency_gain, estimated_cost, time_required, completed FROM tasks ORDER BY position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.HardeningTask
	for rows.Next() {
		var t domain.HardeningTask
		var category, priority string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &category, &priority,
			&t.ResiliencyGain, &t.EstimatedCost, &t.TimeRequired, &t.Completed); err != nil {
			return nil, err
		}
		if t.Category, err = domain.ParseTaskCategory(category); err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
		if t.Priority, err = domain.ParsePriority(priority); err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (d *DB) loadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, description, image_url, price, category, rating, review_count, in_stock, features, related_tasks FROM products ORDER BY position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Category,
			&p.Rating, &p.ReviewCount, &p.InStock, pq.Array(&p.Features), pq.Array(&p.RelatedTasks)); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) loadBundles(ctx context.Context, cat *domain.Catalog) ([]domain.Bundle, error) {
	members, err := d.bundleMembers(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, description, category, original_price, bundle_price, savings FROM bundles ORDER BY position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.Bundle
	for rows.Next() {
		var b domain.Bundle
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Category, &b.OriginalPrice, &b.BundlePrice, &b.Savings); err != nil {
			return nil, err
		}
		for _, id := range members[b.ID] {
			p, ok := cat.Product(id)
			if !ok {
				return nil, fmt.Errorf("bundle %q: unknown product %q", b.ID, id)
			}
			b.Products = append(b.Products, p)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (d *DB) bundleMembers(ctx context.Context) (map[string][]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT bundle_id, product_id FROM bundle_products ORDER BY bundle_id, position;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := map[string][]string{}
	for rows.Next() {
		var bundleID, productID string
		if err := rows.Scan(&bundleID, &productID); err != nil {
			return nil, err
		}
		out[bundleID] = append(out[bundleID], productID)
	}
	return out, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
