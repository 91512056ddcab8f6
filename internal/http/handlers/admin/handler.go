package admin

import "github.com/libas-next/internal/provider"

// Handler serves the back-office APIs. Every route behind it requires
// the admin role.
type Handler struct {
	*provider.Container
}

// New creates the back-office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
