package app

import (
	"context"
	"errors"
	"net/http"
)

// HTTPService adapts an http.Server to the Service interface.
type HTTPService struct {
	name   string
	server *http.Server
}

func NewHTTPService(name string, server *http.Server) *HTTPService {
	return &HTTPService{name: name, server: server}
}

func (s *HTTPService) Name() string { return s.name }

func (s *HTTPService) Start(_ context.Context) error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *HTTPService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
