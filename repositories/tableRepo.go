package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"
)

type TableRepository struct {
	db *database.DB
}

func NewTableRepository(db *database.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) FindByID(ctx context.Context, id int64) (*models.Table, error) {
	var table models.Table
	err := r.db.QueryRow(ctx,
		`SELECT id, name, status, created_at, updated_at FROM tables WHERE id = $1`, id).
		Scan(&table.ID, &table.Name, &table.Status, &table.CreatedAt, &table.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query table: %w", err)
	}
	return &table, nil
}

func (r *TableRepository) FindAll(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, status, created_at, updated_at FROM tables ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var table models.Table
		if err := rows.Scan(&table.ID, &table.Name, &table.Status, &table.CreatedAt, &table.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *TableRepository) Create(ctx context.Context, table *models.Table) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tables (name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		table.Name, table.Status, table.CreatedAt, table.UpdatedAt).
		Scan(&table.ID)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

func (r *TableRepository) Update(ctx context.Context, table *models.Table) error {
	err := r.db.Exec(ctx,
		`UPDATE tables SET name = $1, status = $2, updated_at = $3 WHERE id = $4`,
		table.Name, table.Status, table.UpdatedAt, table.ID)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	return nil
}
