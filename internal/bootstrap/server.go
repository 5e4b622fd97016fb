package bootstrap

import (
	"fmt"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/config"
	"github.com/NKTHUAN-2K5/portfolio/internal/events"
	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/handlers"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/metrics"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
	"github.com/NKTHUAN-2K5/portfolio/internal/server"
	"github.com/NKTHUAN-2K5/portfolio/internal/uploads"
)

// SetupHTTPServer wires the resource client, renderer and handlers into
// a configured HTTP server.
func SetupHTTPServer(
	cfg *config.Config,
	publisher *events.Publisher,
	log logger.Logger,
) (*server.Server, error) {
	httpc := client.NewHTTPClient(cfg.API.Timeout)
	apiClient := client.New(cfg.API.BaseURL, httpc, log)

	m := metrics.New()
	apiClient.SetFallbackHook(m.FallbackServed)

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	h := handlers.New(handlers.Deps{
		Client:    apiClient,
		Renderer:  renderer,
		Mutator:   forms.NewMutator(apiClient, log),
		Uploader:  uploads.NewAdapter(cfg.API.BaseURL, httpc, cfg.Uploads.MaxWorkers, log),
		Sessions:  uploads.NewSessions(cfg.Uploads.FormSessionTTL),
		Publisher: publisher,
		Config:    cfg,
		Log:       log,
	})

	router := server.NewRouter(cfg, h, m, log)
	return server.New(cfg, router, log), nil
}
