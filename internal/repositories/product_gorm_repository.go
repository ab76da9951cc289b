package repositories

import (
	"context"
	"errors"

	"inventory/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes that map onto column constraint violations.
const (
	pgNotNullViolation          = "23502"
	pgCheckViolation            = "23514"
	pgStringDataRightTruncation = "22001"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, classify("get all products", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint64) (*models.Product, bool, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, classify("get product by id", err)
	}
	return &product, true, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	// Identity is always assigned by the database.
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return classify("create product", err)
	}
	return nil
}

// Update overwrites all mutable columns, including a NULL description.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	var description interface{}
	if product.Description != nil {
		description = *product.Description
	}
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"product_name": product.ProductName,
			"price":        product.Price,
			"quantity":     product.Quantity,
			"description":  description,
		})
	if res.Error != nil {
		return classify("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{ID: product.ID}
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return classify("delete product", err)
	}
	return nil
}

// classify turns a driver error into a ValidationError when it stems from a
// column constraint and into a StorageError otherwise.
func classify(op string, err error) error {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &models.ValidationError{Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgCheckViolation, pgStringDataRightTruncation:
			fields := map[string]string{}
			if pgErr.ColumnName != "" {
				fields[pgErr.ColumnName] = pgErr.Message
			}
			return &models.ValidationError{Fields: fields, Err: err}
		}
	}
	return &models.StorageError{Op: op, Err: err}
}
