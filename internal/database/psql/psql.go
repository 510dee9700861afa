package psql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	databaseerrors "shopapi/internal/database"
	"shopapi/internal/models"
	"shopapi/pkg/lib/logger/sl"

	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

type Storage struct {
	log *slog.Logger
	db  *sqlx.DB
}

func New(log *slog.Logger, connStr string) *Storage {
	const op = "database.psql.New"
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.With("op", op).Error("Error connect to database", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}

	wd, err := os.Getwd()
	if err != nil {
		log.With("op", op).Error("Error getting work dir", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}
	migrationsPath := filepath.Join(wd, "migrations")

	if err := goose.Up(db.DB, migrationsPath); err != nil {
		log.With("op", op).Error("Error applying migrations", sl.Err(err))
		panic(fmt.Errorf("%s: %w", op, err))
	}

	return &Storage{
		log: log,
		db:  db,
	}
}

func NewWithParams(log *slog.Logger, db *sqlx.DB) *Storage {
	return &Storage{
		log: log,
		db:  db,
	}
}

func (s *Storage) Close() {
	s.db.Close()
}

func (s *Storage) ListProducts(ctx context.Context) ([]models.ProductRecord, error) {
	const op = "database.psql.ListProducts"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, name, description, cost, qty FROM products
		ORDER BY id;
	`)
	if err != nil {
		log.Error("Failed to query products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records = make([]models.ProductRecord, 0, 10)
	for rows.Next() {
		var rec models.ProductRecord
		if err := rows.StructScan(&rec); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

func (s *Storage) GetProduct(ctx context.Context, productId int) (models.ProductRecord, error) {
	const op = "database.psql.GetProduct"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return models.ProductRecord{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var rec models.ProductRecord
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, name, description, cost, qty FROM products
		WHERE id=$1;
	`, productId).StructScan(&rec)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ProductRecord{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to query product", sl.Err(err))
		return models.ProductRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

func (s *Storage) AddProduct(ctx context.Context, rec models.ProductRecord) error {
	const op = "database.psql.AddProduct"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// The record is persisted exactly as given: an absent qty stays NULL
	// and is defaulted on load, not here.
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, cost, qty)
		VALUES ($1, $2, $3, $4, $5);
	`, rec.Id, rec.Name, rec.Description, rec.Cost, rec.Qty); err != nil {
		log.Error("Failed to insert product", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateQty(ctx context.Context, productId int, qty int) error {
	const op = "database.psql.UpdateQty"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE products SET qty=$1
		WHERE id=$2;
	`, qty, productId); err != nil {
		log.Error("Failed to update quantity", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetCart(ctx context.Context, username string) ([]models.CartRecord, error) {
	const op = "database.psql.GetCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, username, contents, cost FROM carts
		WHERE username=$1
		ORDER BY id;
	`, username)
	if err != nil {
		log.Error("Failed to query cart rows", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records = make([]models.CartRecord, 0, 10)
	var tmpRec models.CartRecord
	for rows.Next() {
		if err := rows.StructScan(&tmpRec); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			continue
		}

		records = append(records, tmpRec)
	}

	return records, nil
}

func (s *Storage) AddToCart(ctx context.Context, username string, productId int) error {
	const op = "database.psql.AddToCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var rowId int
	var contents string
	err = tx.QueryRowxContext(ctx, `
		SELECT id, contents FROM carts
		WHERE username=$1
		ORDER BY id
		LIMIT 1;
	`, username).Scan(&rowId, &contents)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("Error reading cart row", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}

		// first add for this user creates the cart row
		encoded, err := json.Marshal([]int{productId})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO carts (username, contents, cost)
			VALUES ($1, $2, 0);
		`, username, string(encoded)); err != nil {
			log.Error("Failed to insert cart row", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := tx.Commit(); err != nil {
			log.Error("Failed to commit transaction", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	var productIds []int
	if err := json.Unmarshal([]byte(contents), &productIds); err != nil {
		log.Error("Cart row contents is not a JSON array", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	productIds = append(productIds, productId)

	encoded, err := json.Marshal(productIds)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE carts SET contents=$1
		WHERE id=$2;
	`, string(encoded), rowId); err != nil {
		log.Error("Failed to update cart row", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) RemoveFromCart(ctx context.Context, username string, productId int) error {
	const op = "database.psql.RemoveFromCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.db.Beginx()
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, `
		SELECT id, contents FROM carts
		WHERE username=$1
		ORDER BY id;
	`, username)
	if err != nil {
		log.Error("Failed to query cart rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	// first occurrence across the user's rows wins; removing an id that is
	// not present anywhere is a no-op
	targetRow := -1
	var updated string
	for rows.Next() {
		var rowId int
		var contents string
		if err := rows.Scan(&rowId, &contents); err != nil {
			log.Error("Failed to scan row", sl.Err(err))
			continue
		}

		var productIds []int
		if err := json.Unmarshal([]byte(contents), &productIds); err != nil {
			log.Warn("Skipping cart row with malformed contents", sl.Err(err))
			continue
		}

		for i, id := range productIds {
			if id == productId {
				productIds = append(productIds[:i], productIds[i+1:]...)
				encoded, err := json.Marshal(productIds)
				if err != nil {
					rows.Close()
					return fmt.Errorf("%s: %w", op, err)
				}
				targetRow = rowId
				updated = string(encoded)
				break
			}
		}
		if targetRow != -1 {
			break
		}
	}
	rows.Close()

	if targetRow == -1 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE carts SET contents=$1
		WHERE id=$2;
	`, updated, targetRow); err != nil {
		log.Error("Failed to update cart row", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteCart(ctx context.Context, username string) error {
	const op = "database.psql.DeleteCart"
	log := s.log.With("op", op)

	select {
	case <-ctx.Done():
		log.Error("Context is over", sl.Err(ctx.Err()))
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE username=$1;
	`, username); err != nil {
		log.Error("Failed to delete cart rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
