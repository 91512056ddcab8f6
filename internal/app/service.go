package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component managed by the Runner.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner starts a set of services and stops them on signal or first failure.
type Runner struct {
	services        []Service
	logger          *zap.Logger
	signals         []os.Signal
	shutdownTimeout time.Duration
}

func (r *Runner) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), r.signals...)
	defer stop()

	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		svc := svc
		r.logger.Info("service starting", zap.String("service", svc.Name()))
		go func() {
			if err := svc.Start(ctx); err != nil {
				errCh <- fmt.Errorf("%s: %w", svc.Name(), err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		runErr = err
		r.logger.Error("service failed", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(stopCtx); err != nil {
			r.logger.Warn("service stop failed",
				zap.String("service", svc.Name()), zap.Error(err))
		} else {
			r.logger.Info("service stopped", zap.String("service", svc.Name()))
		}
	}
	return runErr
}
