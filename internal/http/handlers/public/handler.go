package public

import "github.com/libas-next/internal/provider"

// Handler serves the storefront and account APIs.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
