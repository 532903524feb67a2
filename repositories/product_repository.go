package repositories

import (
	"context"
	"time"

	"carers-store/config"
	"carers-store/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, name, description, category, price, stock, image_url, cloudinary_id,
          COALESCE(price_ref, ''), COALESCE(product_ref, ''), is_active, created_at, updated_at`

func scanProduct(row interface {
	Scan(dest ...interface{}) error
}, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock,
		&p.ImageURL, &p.CloudinaryID, &p.PriceRef, &p.ProductRef, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetAllProducts(page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	config.DB.QueryRow(context.Background(), `SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&total)

	query := `SELECT ` + productColumns + `
	          FROM products WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := config.DB.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, total, nil
}

func (r *ProductRepository) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := scanProduct(config.DB.QueryRow(context.Background(), query, id), &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProductsByIDs loads catalog metadata for a set of cart lines in one query.
func (r *ProductRepository) GetProductsByIDs(ids []int) (map[int]models.Product, error) {
	result := map[int]models.Product{}
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := config.DB.Query(context.Background(), query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			continue
		}
		result[p.ID] = p
	}
	return result, nil
}

func (r *ProductRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (name, description, category, price, stock, image_url, cloudinary_id, price_ref, product_ref, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10, $11)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(context.Background(), query,
		product.Name, product.Description, product.Category, product.Price, product.Stock,
		product.ImageURL, product.CloudinaryID, product.PriceRef, product.ProductRef, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	query := `UPDATE products SET name = $1, description = $2, category = $3, price = $4,
	          stock = $5, image_url = $6, cloudinary_id = $7, price_ref = $8, product_ref = $9,
	          is_active = $10, updated_at = $11 WHERE id = $12`
	_, err := config.DB.Exec(context.Background(), query,
		product.Name, product.Description, product.Category, product.Price,
		product.Stock, product.ImageURL, product.CloudinaryID, product.PriceRef, product.ProductRef,
		product.IsActive, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) DeleteProduct(id int) error {
	query := `UPDATE products SET is_active = false WHERE id = $1`
	_, err := config.DB.Exec(context.Background(), query, id)
	return err
}
