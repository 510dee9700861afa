package urlparser

import (
	"errors"
	"strconv"
	"strings"
)

// ParseProductPath extracts the product id from /products/{id} or
// /products/{id}/qty.
func ParseProductPath(path string) (int, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	switch len(parts) {
	case 2:
		if parts[0] != "products" {
			return 0, errors.New("invalid path, expected /products/{productId}")
		}
		productId, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, errors.New("invalid productId, must be int")
		}
		return productId, nil
	case 3:
		if parts[0] != "products" || parts[2] != "qty" {
			return 0, errors.New("invalid path, expected /products/{productId}/qty")
		}
		productId, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, errors.New("invalid productId, must be int")
		}
		return productId, nil
	default:
		return 0, errors.New("wrong url format")
	}
}

type CartPathParams struct {
	Username  string
	ProductId int
}

// ParseCartPath extracts params from /cart/{username} or
// /cart/{username}/items/{productId}.
func ParseCartPath(path string) (CartPathParams, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	params := CartPathParams{}

	switch len(parts) {
	case 2:
		if parts[0] != "cart" {
			return params, errors.New("invalid path, expected /cart/{username}")
		}
		params.Username = parts[1]
		return params, nil
	case 4:
		if parts[0] != "cart" || parts[2] != "items" {
			return params, errors.New("invalid path, expected /cart/{username}/items/{productId}")
		}
		productId, err := strconv.Atoi(parts[3])
		if err != nil {
			return params, errors.New("invalid productId, must be int")
		}
		params.Username = parts[1]
		params.ProductId = productId
		return params, nil
	default:
		return params, errors.New("wrong url format")
	}
}
