package cartservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"shopapi/internal/models"
	"shopapi/pkg/lib/logger/sl"
)

type CartStorage interface {
	GetCart(ctx context.Context, username string) ([]models.CartRecord, error)
	AddToCart(ctx context.Context, username string, productId int) error
	RemoveFromCart(ctx context.Context, username string, productId int) error
	DeleteCart(ctx context.Context, username string) error
}

// ProductProvider resolves product ids while reading a cart; the catalog
// service satisfies it.
type ProductProvider interface {
	GetProduct(ctx context.Context, productId int) (models.Product, bool, error)
}

type CartService struct {
	log     *slog.Logger
	storage CartStorage
	catalog ProductProvider
}

func New(log *slog.Logger, storage CartStorage, catalog ProductProvider) *CartService {
	return &CartService{
		log:     log,
		storage: storage,
		catalog: catalog,
	}
}

// DecodeContents parses a cart row's contents field, a JSON-encoded array
// of product ids. It is the single place the skip-on-malformed policy
// hangs off of: callers drop the whole row when it fails.
func DecodeContents(contents string) ([]int, error) {
	var productIds []int
	if err := json.Unmarshal([]byte(contents), &productIds); err != nil {
		return nil, err
	}
	return productIds, nil
}

// GetCart resolves the user's cart rows into one flat product list, in row
// order then in-row id order. Rows with undecodable contents are skipped
// whole; ids that don't resolve to a product are dropped silently. A user
// with no rows gets an empty list, never an error.
func (c *CartService) GetCart(ctx context.Context, username string) ([]models.Product, error) {
	const op = "service.cart.GetCart"
	log := c.log.With("op", op)

	records, err := c.storage.GetCart(ctx, username)
	if err != nil {
		log.Error("Failed to get cart rows", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	productsInCart := make([]models.Product, 0, len(records))
	for _, rec := range records {
		productIds, err := DecodeContents(rec.Contents)
		if err != nil {
			log.Warn("Skipping cart row with malformed contents",
				slog.Int("rowId", rec.Id), sl.Err(err))
			continue
		}

		for _, productId := range productIds {
			product, found, err := c.catalog.GetProduct(ctx, productId)
			if err != nil {
				log.Error("Failed to resolve product", sl.Err(err))
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if !found {
				continue
			}

			productsInCart = append(productsInCart, product)
		}
	}

	return productsInCart, nil
}

// AddToCart does not check that the product exists or that it is already
// in the cart; both are the store's concern.
func (c *CartService) AddToCart(ctx context.Context, username string, productId int) error {
	const op = "service.cart.AddToCart"
	log := c.log.With("op", op)

	if err := c.storage.AddToCart(ctx, username, productId); err != nil {
		log.Error("Failed to add item to cart", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *CartService) RemoveFromCart(ctx context.Context, username string, productId int) error {
	const op = "service.cart.RemoveFromCart"
	log := c.log.With("op", op)

	if err := c.storage.RemoveFromCart(ctx, username, productId); err != nil {
		log.Error("Failed to remove item from cart", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *CartService) DeleteCart(ctx context.Context, username string) error {
	const op = "service.cart.DeleteCart"
	log := c.log.With("op", op)

	if err := c.storage.DeleteCart(ctx, username); err != nil {
		log.Error("Failed to delete cart", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
