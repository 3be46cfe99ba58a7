package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create pgx pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return pool, nil
}

// EnsureSchema creates the tables if they are missing and seeds the fixed
// menu categories.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS categories (
  id   text PRIMARY KEY,
  name text NOT NULL,
  sort int  NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS dishes (
  id         text PRIMARY KEY,
  category   text NOT NULL,
  created_at timestamptz NOT NULL DEFAULT now(),
  payload    jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
  id         text PRIMARY KEY,
  created_at timestamptz NOT NULL DEFAULT now(),
  payload    jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS reviews (
  id         text PRIMARY KEY,
  dish_id    text NOT NULL,
  created_at timestamptz NOT NULL DEFAULT now(),
  payload    jsonb NOT NULL
);
CREATE INDEX IF NOT EXISTS reviews_dish_id_idx ON reviews (dish_id);`)
	if err != nil {
		return errors.Wrap(err, "create schema")
	}

	_, err = pool.Exec(ctx, `
INSERT INTO categories (id, name, sort) VALUES
  ('hot',     'Hot Dishes',  1),
  ('cold',    'Cold Dishes', 2),
  ('staple',  'Staples',     3),
  ('drink',   'Drinks',      4),
  ('coffee',  'Coffee',      5),
  ('dessert', 'Desserts',    6)
ON CONFLICT (id) DO NOTHING;`)
	return errors.Wrap(err, "seed categories")
}
