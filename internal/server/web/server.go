package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"

	"github.com/nickzhog/storage-bench/internal/server/config"
	"github.com/nickzhog/storage-bench/internal/server/server"
	"github.com/nickzhog/storage-bench/internal/server/web/middleware"
)

func NewRouter(srv *server.Server) http.Handler {
	handlerData := NewHandler(srv)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(srv.Logger))

	r.Mount("/debug", chimiddleware.Profiler())

	r.Get("/", handlerData.IndexHandler)
	r.Get("/ping", handlerData.PingHandler)

	r.Get("/fetch-and-insert-data", handlerData.FetchAndInsertHandler)
	r.Get("/read-data", handlerData.ReadDataHandler)

	r.Route("/insert", func(r chi.Router) {
		r.Post("/depth-history", handlerData.InsertDepthHandler)
		r.Post("/rune-pool-history", handlerData.InsertRunePoolHandler)
	})

	return r
}

// Serve работает до отмены ctx, затем корректно останавливает сервер.
func Serve(ctx context.Context, srv *server.Server, cfg *config.Config) error {
	httpSrv := &http.Server{
		Addr:    cfg.Settings.Address,
		Handler: NewRouter(srv),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	srv.Logger.Tracef("server started on %s", cfg.Settings.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.Logger.Tracef("server stopped")

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctxShutDown); err != nil {
		return err
	}

	srv.Logger.Tracef("server exited properly")
	return nil
}
