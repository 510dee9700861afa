package psql_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	databaseerrors "shopapi/internal/database"
	"shopapi/internal/database/psql"
	"shopapi/internal/models"
	"shopapi/pkg/lib/logger/slogdiscard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newTestStorage(t *testing.T) (*psql.Storage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %s", err)
	}

	storage := psql.NewWithParams(slogdiscard.NewDiscardLogger(), sqlx.NewDb(db, "sqlmock"))
	cleanup := func() { db.Close() }
	return storage, mock, cleanup
}

func TestGetProduct_ContextCanceled(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := storage.GetProduct(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetProduct_DeadlineExceeded(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	time.Sleep(time.Millisecond * 55)
	_, err := storage.GetProduct(ctx, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetProduct_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "cost", "qty"}).
		AddRow(1, "Pen", "blue ballpoint", 1.5, 7)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, cost, qty FROM products WHERE id=$1")).
		WithArgs(1).
		WillReturnRows(rows)

	rec, err := storage.GetProduct(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, *rec.Id)
	assert.Equal(t, "Pen", *rec.Name)
	assert.Equal(t, 1.5, *rec.Cost)
	assert.Equal(t, 7, *rec.Qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NullQtyStaysNull(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "cost", "qty"}).
		AddRow(2, "Mug", nil, 8.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, cost, qty FROM products WHERE id=$1")).
		WithArgs(2).
		WillReturnRows(rows)

	rec, err := storage.GetProduct(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, rec.Qty)
	assert.Nil(t, rec.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProduct_NotFound(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, cost, qty FROM products WHERE id=$1")).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := storage.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "cost", "qty"}).
		AddRow(1, "Pen", "blue", 1.5, 7).
		AddRow(2, "Mug", nil, 8.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, cost, qty FROM products ORDER BY id")).
		WillReturnRows(rows)

	records, err := storage.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Pen", *records[0].Name)
	assert.Nil(t, records[1].Qty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProducts_Empty(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "cost", "qty"})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, cost, qty FROM products ORDER BY id")).
		WillReturnRows(rows)

	records, err := storage.ListProducts(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddProduct_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	id, name, cost := 1, "Pen", 1.5
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (id, name, description, cost, qty) VALUES ($1, $2, $3, $4, $5)")).
		WithArgs(1, "Pen", nil, 1.5, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.AddProduct(context.Background(), models.ProductRecord{Id: &id, Name: &name, Cost: &cost})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQty_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET qty=$1 WHERE id=$2")).
		WithArgs(3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.UpdateQty(context.Background(), 1, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "contents", "cost"}).
		AddRow(1, "bob", "[1, 2]", 9.5).
		AddRow(2, "bob", "not-json", 0)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, contents, cost FROM carts WHERE username=$1 ORDER BY id")).
		WithArgs("bob").
		WillReturnRows(rows)

	records, err := storage.GetCart(context.Background(), "bob")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "[1, 2]", records[0].Contents)
	assert.Equal(t, "not-json", records[1].Contents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart_NoRows(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "contents", "cost"})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, contents, cost FROM carts WHERE username=$1 ORDER BY id")).
		WithArgs("ghost").
		WillReturnRows(rows)

	records, err := storage.GetCart(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_CreatesRowOnFirstAdd(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, contents FROM carts WHERE username=$1 ORDER BY id LIMIT 1")).
		WithArgs("alice").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts (username, contents, cost) VALUES ($1, $2, 0)")).
		WithArgs("alice", "[5]").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := storage.AddToCart(context.Background(), "alice", 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_AppendsToExistingRow(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "contents"}).AddRow(7, "[1,2]")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, contents FROM carts WHERE username=$1 ORDER BY id LIMIT 1")).
		WithArgs("bob").
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE carts SET contents=$1 WHERE id=$2")).
		WithArgs("[1,2,5]", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := storage.AddToCart(context.Background(), "bob", 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCart_RemovesFirstOccurrence(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "contents"}).AddRow(7, "[1,2,1]")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, contents FROM carts WHERE username=$1 ORDER BY id")).
		WithArgs("bob").
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE carts SET contents=$1 WHERE id=$2")).
		WithArgs("[2,1]", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := storage.RemoveFromCart(context.Background(), "bob", 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCart_AbsentIdIsNoop(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "contents"}).AddRow(7, "[1,2]")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, contents FROM carts WHERE username=$1 ORDER BY id")).
		WithArgs("bob").
		WillReturnRows(rows)
	mock.ExpectRollback()

	err := storage.RemoveFromCart(context.Background(), "bob", 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCart_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM carts WHERE username=$1")).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := storage.DeleteCart(context.Background(), "alice")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
