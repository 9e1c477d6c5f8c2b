package main

import (
	"context"

	"github.com/spf13/afero"

	"github.com/voxcribe/voxcribe/internal/cli"
	"github.com/voxcribe/voxcribe/internal/config"
	"github.com/voxcribe/voxcribe/internal/logging"
)

func main() {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading configuration", "error", err)
	}

	fs := afero.NewOsFs()
	cmd := cli.NewRootCommand(fs, cfg, logger)

	// Outcomes differ only in printed output; the process exits 0 on
	// every designed path.
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logger.Error(err.Error())
	}
}
