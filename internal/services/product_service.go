package services

import (
	"context"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"go.uber.org/zap"
)

// EventPublisher delivers product lifecycle events to interested parties.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
	log    *zap.Logger
}

// Option configures a ProductService.
type Option func(*ProductService)

// WithEvents publishes lifecycle events after every committed write.
func WithEvents(events EventPublisher) Option {
	return func(s *ProductService) {
		s.events = events
	}
}

// WithLogger sets the logger used by the service.
func WithLogger(log *zap.Logger) Option {
	return func(s *ProductService) {
		s.log = log
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...Option) *ProductService {
	s := &ProductService{
		repo: repo,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
// It fails with a NotFoundError when no such product exists.
func (s *ProductService) GetProductByID(ctx context.Context, id uint64) (*models.Product, error) {
	product, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &models.NotFoundError{ID: id}
	}
	return product, nil
}

// CreateProduct validates the input and persists it as a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	product := input.ToProduct()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.Uint64("product_id", product.ID))
	s.publish(models.EventProductCreated, product.ID, product)
	return product, nil
}

// UpdateProduct overwrites every mutable field of the product with the given id.
// A missing product is reported as NotFound before the input is validated.
// Absent optional fields in input clear the stored value.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint64, input models.ProductInput) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	product.Apply(input)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product updated", zap.Uint64("product_id", product.ID))
	s.publish(models.EventProductUpdated, product.ID, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
// It fails with a NotFoundError when no such product exists.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint64) error {
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("product deleted", zap.Uint64("product_id", id))
	s.publish(models.EventProductDeleted, id, nil)
	return nil
}

// publish never fails the caller: the write has already been committed.
func (s *ProductService) publish(eventType string, id uint64, product *models.Product) {
	if s.events == nil {
		return
	}
	var snapshot *models.Product
	if product != nil {
		p := *product
		snapshot = &p
	}
	if err := s.events.PublishProductEvent(models.NewProductEvent(eventType, id, snapshot)); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("event", eventType),
			zap.Uint64("product_id", id),
			zap.Error(err),
		)
	}
}
