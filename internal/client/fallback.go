package client

import (
	"embed"
	"fmt"
)

// Fallback snapshots are static documents structurally identical to the
// corresponding API success payloads. They are regenerated from a live
// backend by cmd/snapshot.
//
//go:embed data
var fallbackFS embed.FS

func fallbackDocument(col Collection) ([]byte, error) {
	body, err := fallbackFS.ReadFile("data/" + string(col) + ".json")
	if err != nil {
		return nil, fmt.Errorf("no fallback snapshot for %s: %w", col, err)
	}
	return body, nil
}
