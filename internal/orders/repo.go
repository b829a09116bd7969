package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Create inserts the order and returns the assigned id. This is the
// durability boundary of order submission: once it returns nil the order
// exists no matter what happens to the downstream notification.
func (r *Repo) Create(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO orders(product_id, user_id, quantity, order_date, total_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		o.ProductID, o.UserID, o.Quantity, o.OrderDate, o.TotalCents,
	).Scan(&id)
	return id, err
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, product_id, user_id, quantity, order_date, total_cents
		FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.ProductID, &o.UserID, &o.Quantity, &o.OrderDate, &o.TotalCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// ListByUser returns the user's orders dated before the cutoff, newest first.
// Callers pass time.Now() for the full history.
func (r *Repo) ListByUser(ctx context.Context, userID int64, before time.Time) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, user_id, quantity, order_date, total_cents
		FROM orders
		WHERE user_id=$1 AND order_date < $2
		ORDER BY order_date DESC`, userID, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.UserID, &o.Quantity, &o.OrderDate, &o.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Delete removes the order by its own id, scoped to the owning user.
func (r *Repo) Delete(ctx context.Context, id, userID int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
