package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"
)

type PromotionRepository struct {
	db *database.DB
}

func NewPromotionRepository(db *database.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

const promotionColumns = `id, name, discount_percent, discount_amount,
	start_date, end_date, is_active, created_at, updated_at`

func (r *PromotionRepository) FindByID(ctx context.Context, id int64) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id).
		Scan(&promotion.ID, &promotion.Name, &promotion.DiscountPercent, &promotion.DiscountAmount,
			&promotion.StartDate, &promotion.EndDate, &promotion.IsActive,
			&promotion.CreatedAt, &promotion.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query promotion: %w", err)
	}
	return &promotion, nil
}

func (r *PromotionRepository) FindAll(ctx context.Context) ([]models.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+` FROM promotions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	var promotions []models.Promotion
	for rows.Next() {
		var promotion models.Promotion
		if err := rows.Scan(&promotion.ID, &promotion.Name, &promotion.DiscountPercent,
			&promotion.DiscountAmount, &promotion.StartDate, &promotion.EndDate,
			&promotion.IsActive, &promotion.CreatedAt, &promotion.UpdatedAt); err != nil {
			return nil, err
		}
		promotions = append(promotions, promotion)
	}
	return promotions, rows.Err()
}

func (r *PromotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO promotions (name, discount_percent, discount_amount, start_date,
			end_date, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		promotion.Name, promotion.DiscountPercent, promotion.DiscountAmount,
		promotion.StartDate, promotion.EndDate, promotion.IsActive,
		promotion.CreatedAt, promotion.UpdatedAt).
		Scan(&promotion.ID)
	if err != nil {
		return fmt.Errorf("failed to insert promotion: %w", err)
	}
	return nil
}

func (r *PromotionRepository) Update(ctx context.Context, promotion *models.Promotion) error {
	err := r.db.Exec(ctx,
		`UPDATE promotions SET name = $1, discount_percent = $2, discount_amount = $3,
			start_date = $4, end_date = $5, is_active = $6, updated_at = $7
		 WHERE id = $8`,
		promotion.Name, promotion.DiscountPercent, promotion.DiscountAmount,
		promotion.StartDate, promotion.EndDate, promotion.IsActive,
		promotion.UpdatedAt, promotion.ID)
	if err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	return nil
}
