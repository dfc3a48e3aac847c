package bootstrap

import (
	"fmt"

	coreconfig "github.com/m3rciful/joingate/core/config"
	"github.com/m3rciful/joingate/core/logger"
	"github.com/m3rciful/joingate/internal/store"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	OpenStore  func(path string) *store.Store
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store *store.Store
}

// Run initializes the logger and loads the channel settings from disk.
// A missing or unreadable settings file is not an error; the store starts empty.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	open := opts.OpenStore
	if open == nil {
		open = store.Open
	}
	return &Result{Store: open(opts.Config.Store.Path)}, nil
}
