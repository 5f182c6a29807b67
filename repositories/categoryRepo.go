package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"
)

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, category.Name).
		Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}
