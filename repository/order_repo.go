package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type OrderRepo struct {
	Pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{Pool: pool}
}

// List returns all orders, newest first.
func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	rows, err := r.Pool.Query(ctx, `SELECT payload FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		var o models.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, errors.Wrap(err, "decode order payload")
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepo) Get(ctx context.Context, id string) (models.Order, error) {
	var raw []byte
	err := r.Pool.QueryRow(ctx, `SELECT payload FROM orders WHERE id = $1`, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, errors.Wrap(err, "query order")
	}

	var o models.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return models.Order{}, errors.Wrap(err, "decode order payload")
	}
	return o, nil
}

func (r *OrderRepo) Insert(ctx context.Context, order models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "encode order payload")
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO orders (id, payload) VALUES ($1, $2)`, order.ID, raw)
	return errors.Wrap(err, "insert order")
}

func (r *OrderRepo) Update(ctx context.Context, order models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "encode order payload")
	}
	tag, err := r.Pool.Exec(ctx, `UPDATE orders SET payload = $2 WHERE id = $1`, order.ID, raw)
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
