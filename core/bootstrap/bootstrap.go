package bootstrap

import (
	"fmt"
	"os"
	"strings"

	coreconfig "github.com/m3rciful/docbot/core/config"
	"github.com/m3rciful/docbot/core/logger"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config *coreconfig.Config

	LoggerInit      func(*coreconfig.Config) error
	EnsureOutputDir func(string) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	OutputDir string
}

// Run initializes the logger and prepares the generated-documents directory.
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

	outputDir := strings.TrimSpace(opts.Config.Documents.OutputDir)
	if outputDir == "" {
		outputDir = "generated"
	}
	ensure := opts.EnsureOutputDir
	if ensure == nil {
		ensure = func(dir string) error { return os.MkdirAll(dir, 0o755) }
	}
	if err := ensure(outputDir); err != nil {
		return nil, fmt.Errorf("bootstrap: output dir initialization failed: %w", err)
	}

	return &Result{OutputDir: outputDir}, nil
}
