package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type CategoryRepo struct {
	Pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{Pool: pool}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, name FROM categories ORDER BY sort`)
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
