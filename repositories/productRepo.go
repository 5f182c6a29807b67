package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-restaurant-pos/database"
	"go-restaurant-pos/models"
)

type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `p.id, p.name, p.description, p.price, p.stock_quantity,
	p.image_url, p.is_active, p.category_id, c.name, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var product models.Product
	var categoryName string
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.StockQuantity, &product.ImageURL, &product.IsActive,
		&product.CategoryID, &categoryName, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	product.Category = &models.Category{ID: product.CategoryID, Name: categoryName}
	return &product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products p
		 JOIN categories c ON c.id = p.category_id WHERE p.id = $1`, id)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// FindAll lists products, restricted to active ones when onlyActive is set.
func (r *ProductRepository) FindAll(ctx context.Context, onlyActive bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
		 JOIN categories c ON c.id = p.category_id`
	if onlyActive {
		query += ` WHERE p.is_active`
	}
	query += ` ORDER BY p.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock_quantity, image_url,
			is_active, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.ImageURL, product.IsActive, product.CategoryID,
		product.CreatedAt, product.UpdatedAt).
		Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, stock_quantity = $4,
			image_url = $5, is_active = $6, category_id = $7, updated_at = $8
		 WHERE id = $9`,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.ImageURL, product.IsActive, product.CategoryID,
		product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}
