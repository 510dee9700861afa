package cataloghandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"shopapi/internal/models"
	serviceerrors "shopapi/internal/service"
	"shopapi/pkg/lib/logger/sl"
	"shopapi/pkg/lib/urlparser"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productId int) (models.Product, bool, error)
	AddProduct(ctx context.Context, rec models.ProductRecord) error
	UpdateQty(ctx context.Context, productId int, qty int) error
}

type Handler struct {
	log     *slog.Logger
	service CatalogService
}

func New(log *slog.Logger, service CatalogService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.ListProducts"
	log := h.log.With("op", op)

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		log.Error("Failed to list products", sl.Err(err))
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// GET /products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.GetProduct"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseProductPath(r.URL.Path)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	product, found, err := h.service.GetProduct(r.Context(), productId)
	if err != nil {
		log.Error("Failed to get product", sl.Err(err))
		http.Error(w, "Failed to get product", http.StatusInternalServerError)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}

	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// POST /products
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.AddProduct"
	log := h.log.With("op", op)

	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Cannot read request body", sl.Err(err))
		http.Error(w, "Cannot read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var rec models.ProductRecord
	if err := json.Unmarshal(requestBody, &rec); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}

	if err := h.service.AddProduct(r.Context(), rec); err != nil {
		if errors.Is(err, serviceerrors.ErrValidation) {
			log.Warn("Product must contain id, name and cost", sl.Err(err))
			http.Error(w, "Product must contain id, name and cost", http.StatusBadRequest)
			return
		}

		log.Error("Failed to add product", sl.Err(err))
		http.Error(w, "Failed to add product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

type updateQtyRequest struct {
	Qty int `json:"qty"`
}

// PUT /products/{productId}/qty
func (h *Handler) UpdateQty(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.UpdateQty"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseProductPath(r.URL.Path)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	var req updateQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.service.UpdateQty(r.Context(), productId, req.Qty); err != nil {
		if errors.Is(err, serviceerrors.ErrValidation) {
			log.Warn("Quantity cannot be negative", sl.Err(err))
			http.Error(w, "Quantity cannot be negative", http.StatusBadRequest)
			return
		} else if errors.Is(err, serviceerrors.ErrNotFound) {
			log.Warn("Product not found", sl.Err(err))
			http.NotFound(w, r)
			return
		}

		log.Error("Failed to update quantity", sl.Err(err))
		http.Error(w, "Failed to update quantity", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
