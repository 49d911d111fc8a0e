// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/myrecipe/internal/api"
	"github.com/ManuGH/myrecipe/internal/config"
	"github.com/ManuGH/myrecipe/internal/daemon"
	xglog "github.com/ManuGH/myrecipe/internal/log"
	"github.com/ManuGH/myrecipe/internal/version"
)

// runExportCLI mounts one page, waits for its fetch to settle and writes the
// rendered HTML to --out. A failed fetch still writes the page shell.
func runExportCLI(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("myrecipe export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "destination HTML file")
	configPath := fs.String("config", "", "path to config file (YAML)")
	timeout := fs.Duration("timeout", 30*time.Second, "upper bound for the whole export")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if strings.TrimSpace(*out) == "" {
		fmt.Fprintln(stderr, "Error: --out is required")
		return 2
	}

	cfg, err := config.NewLoader(resolveConfigPath(*configPath), version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Output:  stderr,
		Service: cfg.LogService,
		Version: cfg.Version,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := daemon.NewRecipeClient(cfg.Recipes)
	app := api.NewPageApp(cfg, client, xglog.WithComponent("export"))
	app.Mount(ctx)
	defer app.Unmount()

	select {
	case <-app.Settled():
	case <-ctx.Done():
		fmt.Fprintf(stderr, "Export timed out after %s\n", *timeout)
		return 1
	}

	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		fmt.Fprintf(stderr, "Render failed: %v\n", err)
		return 1
	}
	if err := renameio.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(stderr, "Write failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %d recipes to %s\n", len(app.Recipes()), *out)
	return 0
}
