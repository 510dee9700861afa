package carthandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"shopapi/internal/models"
	"shopapi/pkg/lib/logger/sl"
	"shopapi/pkg/lib/urlparser"
)

type CartService interface {
	GetCart(ctx context.Context, username string) ([]models.Product, error)
	AddToCart(ctx context.Context, username string, productId int) error
	RemoveFromCart(ctx context.Context, username string, productId int) error
	DeleteCart(ctx context.Context, username string) error
}

type Handler struct {
	log     *slog.Logger
	service CartService
}

func New(log *slog.Logger, service CartService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /cart/{username}
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ViewCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Wrong cart path", sl.Err(err))
		http.Error(w, "Wrong cart path", http.StatusBadRequest)
		return
	}

	products, err := h.service.GetCart(r.Context(), params.Username)
	if err != nil {
		log.Error("Failed to get cart", sl.Err(err))
		http.Error(w, "Failed to get cart", http.StatusInternalServerError)
		return
	}

	// aggregate view: id and cost stay zero
	cart := models.Cart{
		Username: params.Username,
		Contents: products,
	}
	if err := json.NewEncoder(w).Encode(cart); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
		http.Error(w, "Failed to responde user", http.StatusInternalServerError)
		return
	}
}

// POST /cart/{username}/items/{productId}
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddToCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	if err := h.service.AddToCart(r.Context(), params.Username, params.ProductId); err != nil {
		log.Error("Failed to add item to cart", sl.Err(err))
		http.Error(w, "Failed to add item to cart", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DELETE /cart/{username}/items/{productId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.RemoveFromCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), params.Username, params.ProductId); err != nil {
		log.Error("Failed to remove item from cart", sl.Err(err))
		http.Error(w, "Failed to remove item from cart", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /cart/{username}
func (h *Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.DeleteCart"
	log := h.log.With("op", op)

	params, err := urlparser.ParseCartPath(r.URL.Path)
	if err != nil {
		log.Error("Wrong cart path", sl.Err(err))
		http.Error(w, "Wrong cart path", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCart(r.Context(), params.Username); err != nil {
		log.Error("Failed to delete cart", sl.Err(err))
		http.Error(w, "Failed to delete cart", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
