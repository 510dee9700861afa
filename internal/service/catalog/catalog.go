package catalogservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	databaseerrors "shopapi/internal/database"
	"shopapi/internal/models"
	serviceerrors "shopapi/internal/service"
	"shopapi/pkg/lib/logger/sl"

	"github.com/go-playground/validator/v10"
)

type ProductStorage interface {
	ListProducts(ctx context.Context) ([]models.ProductRecord, error)
	GetProduct(ctx context.Context, productId int) (models.ProductRecord, error)
	AddProduct(ctx context.Context, rec models.ProductRecord) error
	UpdateQty(ctx context.Context, productId int, qty int) error
}

type CatalogService struct {
	log      *slog.Logger
	storage  ProductStorage
	validate *validator.Validate
}

func New(log *slog.Logger, storage ProductStorage) *CatalogService {
	return &CatalogService{
		log:      log,
		storage:  storage,
		validate: validator.New(),
	}
}

func (c *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "service.catalog.ListProducts"
	log := c.log.With("op", op)

	records, err := c.storage.ListProducts(ctx)
	if err != nil {
		log.Error("Failed to list products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, models.LoadProduct(rec))
	}

	return products, nil
}

// GetProduct reports an unknown id as (zero, false, nil): absent is a
// result, not an error.
func (c *CatalogService) GetProduct(ctx context.Context, productId int) (models.Product, bool, error) {
	const op = "service.catalog.GetProduct"
	log := c.log.With("op", op)

	rec, err := c.storage.GetProduct(ctx, productId)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			return models.Product{}, false, nil
		}

		log.Error("Failed to get product", sl.Err(err))
		return models.Product{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return models.LoadProduct(rec), true, nil
}

// AddProduct forwards the raw record untouched: no qty defaulting happens
// on the write path, only LoadProduct fills it in on reads.
func (c *CatalogService) AddProduct(ctx context.Context, rec models.ProductRecord) error {
	const op = "service.catalog.AddProduct"
	log := c.log.With("op", op)

	if err := c.validate.Struct(rec); err != nil {
		log.Warn("Product must contain id, name and cost", sl.Err(err))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrValidation)
	}

	if err := c.storage.AddProduct(ctx, rec); err != nil {
		log.Error("Failed to add product", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateQty checks existence with a fresh lookup right before the write.
// The two storage calls are not one transaction; a concurrent writer can
// slip between them and that is the documented behavior.
func (c *CatalogService) UpdateQty(ctx context.Context, productId int, qty int) error {
	const op = "service.catalog.UpdateQty"
	log := c.log.With("op", op)

	if qty < 0 {
		log.Warn("Quantity cannot be negative", slog.Int("qty", qty))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrValidation)
	}

	_, found, err := c.GetProduct(ctx, productId)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		log.Warn("Product doesn't exist", slog.Int("productId", productId))
		return fmt.Errorf("%s: %w", op, serviceerrors.ErrNotFound)
	}

	if err := c.storage.UpdateQty(ctx, productId, qty); err != nil {
		log.Error("Failed to update quantity", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
