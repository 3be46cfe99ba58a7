package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type DishRepo struct {
	Pool *pgxpool.Pool
}

func NewDishRepo(pool *pgxpool.Pool) *DishRepo {
	return &DishRepo{Pool: pool}
}

func (r *DishRepo) List(ctx context.Context) ([]models.Dish, error) {
	return r.query(ctx, `SELECT payload FROM dishes ORDER BY created_at`)
}

func (r *DishRepo) ListByCategory(ctx context.Context, category string) ([]models.Dish, error) {
	return r.query(ctx, `SELECT payload FROM dishes WHERE lower(category) = lower($1) ORDER BY created_at`, category)
}

func (r *DishRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.Dish, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query dishes")
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan dish")
		}
		var d models.Dish
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, errors.Wrap(err, "decode dish payload")
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (r *DishRepo) Get(ctx context.Context, id string) (models.Dish, error) {
	var raw []byte
	err := r.Pool.QueryRow(ctx, `SELECT payload FROM dishes WHERE id = $1`, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return models.Dish{}, ErrNotFound
	}
	if err != nil {
		return models.Dish{}, errors.Wrap(err, "query dish")
	}

	var d models.Dish
	if err := json.Unmarshal(raw, &d); err != nil {
		return models.Dish{}, errors.Wrap(err, "decode dish payload")
	}
	return d, nil
}

func (r *DishRepo) Upsert(ctx context.Context, dish models.Dish) error {
	raw, err := json.Marshal(dish)
	if err != nil {
		return errors.Wrap(err, "encode dish payload")
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO dishes (id, category, payload) VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET category = EXCLUDED.category, payload = EXCLUDED.payload`,
		dish.ID, dish.Category, raw)
	return errors.Wrap(err, "upsert dish")
}

func (r *DishRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete dish")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
