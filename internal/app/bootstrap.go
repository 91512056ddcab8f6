package app

import (
	"fmt"
	"net"
	"net/http"

	"github.com/libas-next/internal/provider"
	"github.com/libas-next/internal/router"
	"github.com/libas-next/internal/worker"
)

// BuildRunner assembles the container and the services for the requested mode.
func BuildRunner(opts Options) (*Runner, error) {
	opts = normalizeOptions(opts)
	cfg := opts.Config
	container := provider.NewContainer(cfg)

	var services []Service

	if opts.Mode == ModeAll || opts.Mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
		services = append(services, NewHTTPService("http", &http.Server{
			Addr:    addr,
			Handler: engine,
		}))
	}

	if opts.Mode == ModeAll || opts.Mode == ModeWorker {
		if cfg.Queue.Enabled {
			svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, fmt.Errorf("build worker service: %w", err)
			}
			services = append(services, svc)
		} else if opts.Mode == ModeWorker {
			return nil, fmt.Errorf("worker mode requires queue.enabled")
		}
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services for mode %q", opts.Mode)
	}

	return &Runner{
		services:        services,
		logger:          opts.Logger,
		signals:         opts.Signals,
		shutdownTimeout: opts.ShutdownTimeout,
	}, nil
}

// Run builds the runner and blocks until shutdown.
func Run(opts Options) error {
	runner, err := BuildRunner(opts)
	if err != nil {
		return err
	}
	return runner.Run()
}
