// Command snapshot regenerates the embedded fallback documents from a
// live backend. Run it against a healthy deployment, review the diff,
// and rebuild the gateway to refresh the offline copies.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

const fetchTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	apiURL := flag.String("api", os.Getenv("PORTFOLIO_API_URL"), "Backend API base URL")
	outDir := flag.String("out", "internal/client/data", "Directory for fallback documents")
	flag.Parse()

	if *apiURL == "" {
		return fmt.Errorf("backend URL required: pass -api or set PORTFOLIO_API_URL")
	}

	log, err := logger.New(false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c := client.New(*apiURL, client.NewHTTPClient(fetchTimeout), log)

	for _, col := range client.Collections {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		raw, err := c.LiveCollection(ctx, col)
		cancel()
		if err != nil {
			return fmt.Errorf("fetch %s: %w", col, err)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			return fmt.Errorf("format %s: %w", col, err)
		}
		pretty.WriteByte('\n')

		path := filepath.Join(*outDir, string(col)+".json")
		if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info("Snapshot written",
			logger.String("collection", string(col)),
			logger.String("path", path),
		)
	}
	return nil
}
