package routes

import (
	"net/http"
	carthandler "shopapi/internal/handlers/cart"
	cataloghandler "shopapi/internal/handlers/catalog"
	"strings"
)

type Routes struct {
	catalogHandler *cataloghandler.Handler
	cartHandler    *carthandler.Handler
}

func New(catalogHandler *cataloghandler.Handler, cartHandler *carthandler.Handler) *Routes {
	return &Routes{
		catalogHandler: catalogHandler,
		cartHandler:    cartHandler,
	}
}

func (r *Routes) Register() {
	http.HandleFunc("/products", r.productsParser)
	http.HandleFunc("/products/", r.productPathParser)
	http.HandleFunc("/cart/", r.cartPathParser)
}

func (r *Routes) productsParser(ww http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		// GET /products
		r.catalogHandler.ListProducts(ww, req)
	case http.MethodPost:
		// POST /products
		r.catalogHandler.AddProduct(ww, req)
	default:
		http.NotFound(ww, req)
	}
}

func (r *Routes) productPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 2 && req.Method == http.MethodGet:
		// GET /products/{productId}
		r.catalogHandler.GetProduct(ww, req)
	case len(parts) == 3 && parts[2] == "qty" && req.Method == http.MethodPut:
		// PUT /products/{productId}/qty
		r.catalogHandler.UpdateQty(ww, req)
	default:
		http.NotFound(ww, req)
	}
}

func (r *Routes) cartPathParser(ww http.ResponseWriter, req *http.Request) {
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 2 && req.Method == http.MethodGet:
		// GET /cart/{username}
		r.cartHandler.ViewCart(ww, req)
	case len(parts) == 2 && req.Method == http.MethodDelete:
		// DELETE /cart/{username}
		r.cartHandler.DeleteCart(ww, req)
	case len(parts) == 4 && parts[2] == "items" && req.Method == http.MethodPost:
		// POST /cart/{username}/items/{productId}
		r.cartHandler.AddToCart(ww, req)
	case len(parts) == 4 && parts[2] == "items" && req.Method == http.MethodDelete:
		// DELETE /cart/{username}/items/{productId}
		r.cartHandler.RemoveFromCart(ww, req)
	default:
		http.NotFound(ww, req)
	}
}
