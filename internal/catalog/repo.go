package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, price_cents, category, available, image_url, quantity, version, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Category, &p.Available,
		&p.ImageURL, &p.Quantity, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns the catalog, optionally filtered by category.
func (r *Repo) List(ctx context.Context, category string) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	args := []any{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY name`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, price_cents, category, available, image_url, quantity, version)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		RETURNING id`,
		p.Name, p.PriceCents, p.Category, p.Available, p.ImageURL, p.Quantity,
	).Scan(&id)
	return id, err
}

// Update matches the row on id and version. When no row matches, existence is
// re-checked to tell a vanished product (ErrNotFound) from a concurrent write
// (ErrConflict).
func (r *Repo) Update(ctx context.Context, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, price_cents=$3, category=$4, available=$5, image_url=$6,
		    quantity=$7, version=version+1, updated_at=now()
		WHERE id=$1 AND version=$8`,
		p.ID, p.Name, p.PriceCents, p.Category, p.Available, p.ImageURL, p.Quantity, p.Version,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.DB.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, p.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConflict
}

// Delete is idempotent: removing an absent id succeeds.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

// ReduceStock decrements quantity under a row lock. When stock is short it
// reports applied=false and the quantity still available; nothing is changed.
func (r *Repo) ReduceStock(ctx context.Context, id int64, qty int) (applied bool, available int, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	var stock int
	err = tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id=$1 FOR UPDATE`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, 0, ErrNotFound
	}
	if err != nil {
		return false, 0, err
	}
	if stock < qty {
		return false, stock, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET quantity = quantity - $2, updated_at=now() WHERE id=$1`, id, qty); err != nil {
		return false, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return true, stock - qty, nil
}
