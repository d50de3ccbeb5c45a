package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"butce/internal/config"
	"butce/internal/database"
	"butce/internal/handlers"
	"butce/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(viper.New(), os.Getenv("BUTCE_CONFIG"))
	logger := cfg.NewLogger()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		logger.Fatalf("server: %v", err)
	}
}

// run serves until ctx is done or the listener fails. The store is closed
// on every return path.
func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	repo, openErr := database.OpenOrFallback(ctx, cfg, logger)
	defer repo.Close()

	portfolio := service.NewPortfolio(repo, cfg.Currency, logger)
	if openErr != nil {
		portfolio.WithNotice("Kayıt deposuna bağlanılamadı; değişiklikler yalnızca bellekte tutuluyor.")
	}

	h := handlers.NewHandler(portfolio, logger)

	rg := gin.Default()
	rg.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok", "store": cfg.Store}) })
	rg.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if err := h.Register(rg); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: rg}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("server starting on :%s (store=%s)", cfg.Port, cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
