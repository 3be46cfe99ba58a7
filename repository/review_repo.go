package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type ReviewRepo struct {
	Pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{Pool: pool}
}

func (r *ReviewRepo) ListAll(ctx context.Context) ([]models.Review, error) {
	return r.query(ctx, `SELECT payload FROM reviews ORDER BY created_at`)
}

func (r *ReviewRepo) ListByDish(ctx context.Context, dishID string) ([]models.Review, error) {
	return r.query(ctx, `SELECT payload FROM reviews WHERE dish_id = $1 ORDER BY created_at`, dishID)
}

func (r *ReviewRepo) ListByDishes(ctx context.Context, dishIDs []string) ([]models.Review, error) {
	return r.query(ctx, `SELECT payload FROM reviews WHERE dish_id = ANY($1) ORDER BY created_at`, dishIDs)
}

func (r *ReviewRepo) query(ctx context.Context, sql string, args ...interface{}) ([]models.Review, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query reviews")
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan review")
		}
		var rev models.Review
		if err := json.Unmarshal(raw, &rev); err != nil {
			return nil, errors.Wrap(err, "decode review payload")
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepo) Get(ctx context.Context, id string) (models.Review, error) {
	var raw []byte
	err := r.Pool.QueryRow(ctx, `SELECT payload FROM reviews WHERE id = $1`, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return models.Review{}, ErrNotFound
	}
	if err != nil {
		return models.Review{}, errors.Wrap(err, "query review")
	}

	var rev models.Review
	if err := json.Unmarshal(raw, &rev); err != nil {
		return models.Review{}, errors.Wrap(err, "decode review payload")
	}
	return rev, nil
}

func (r *ReviewRepo) Upsert(ctx context.Context, review models.Review) error {
	raw, err := json.Marshal(review)
	if err != nil {
		return errors.Wrap(err, "encode review payload")
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO reviews (id, dish_id, payload) VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`,
		review.ID, review.DishID, raw)
	return errors.Wrap(err, "upsert review")
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete review")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
