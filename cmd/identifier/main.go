package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"image-identifier/internal/app"
	"image-identifier/internal/httputil"
	"image-identifier/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx)
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	pages, err := web.NewRenderer()
	if err != nil {
		deps.Log.Error("failed to load page templates", "err", err)
		return
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps, pages),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("identifier listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		deps.Log.Info("identifier shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func newRouter(deps app.Deps, pages *web.Renderer) *chi.Mux {
	r := httputil.NewRouter(deps.Log, deps.Config.RequestTimeout)

	r.Get("/", indexHandler(deps, pages))
	r.Post("/identify", identifyPageHandler(deps, pages))
	r.Post("/sessions/{id}/regenerate", regeneratePageHandler(deps, pages))

	r.Route("/api", func(r chi.Router) {
		r.Post("/identify-image", identifyImageHandler(deps))
		r.Post("/identify", identifyHandler(deps))
		r.Get("/sessions/{id}", sessionHandler(deps))
		r.Post("/sessions/{id}/keyword", keywordHandler(deps))
		r.Post("/sessions/{id}/question", questionHandler(deps))
	})
	r.Get("/healthz", httputil.HealthHandler(deps))

	return r
}
