package app

import (
	"os"
	"syscall"
	"time"

	"github.com/libas-next/internal/config"
	"go.uber.org/zap"
)

// Mode selects which services the process runs.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeAPI    Mode = "api"
	ModeWorker Mode = "worker"
)

// Options controls how the application runner is assembled.
type Options struct {
	Config          *config.Config
	Logger          *zap.Logger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            Mode
}

func normalizeOptions(opts Options) Options {
	if len(opts.Signals) == 0 {
		opts.Signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
