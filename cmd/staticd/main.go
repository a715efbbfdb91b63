// Command staticd serves a directory tree over HTTP with conditional-GET
// support, structured access logs, and Prometheus metrics.
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

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/routeserve/routeserve/core/config"
	"github.com/routeserve/routeserve/core/handler"
	"github.com/routeserve/routeserve/core/logger"
	"github.com/routeserve/routeserve/core/response"
	"github.com/routeserve/routeserve/core/router"
	"github.com/routeserve/routeserve/core/static"
)

type appConfig struct {
	Addr string `env:"STATICD_ADDR" envDefault:":8080"`
	Root string `env:"STATICD_ROOT" envDefault:"./public"`
	Log  logger.Config
}

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "staticd_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	},
	[]string{"method", "status"},
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	cmd := &cobra.Command{
		Use:           "staticd",
		Short:         "Static file server with conditional-GET support",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	// Flags override environment values.
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&cfg.Root, "root", cfg.Root, "directory to serve")
	cmd.Flags().StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format (text|json)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig) error {
	log := logger.New(os.Stderr, cfg.Log)

	r := router.New[*router.Context](
		router.WithLogger[*router.Context](log),
		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
	)

	r.Get("/healthz", func(ctx *router.Context) handler.Response {
		return response.String("ok")
	})
	r.Get("/metrics", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error {
			promhttp.Handler().ServeHTTP(w, req)
			return nil
		}
	})
	r.Handle("/*", static.Dir[*router.Context](cfg.Root))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           accessLog(log, r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "root", cfg.Root)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// accessLog tags each request with an ID, logs its outcome, and feeds the
// request counter. It wraps the router from the outside; the dispatcher
// itself carries no middleware chain.
func accessLog(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		requestID := uuid.NewString()

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		requestsTotal.WithLabelValues(r.Method, fmt.Sprint(rec.status)).Inc()
		log.Info("request",
			logger.RequestID(requestID),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(rec.status),
			logger.Elapsed(start),
		)
	})
}
