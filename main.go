// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/cabinet-pediatrie/config"
	"github.com/ariebrainware/cabinet-pediatrie/endpoint"
	"github.com/ariebrainware/cabinet-pediatrie/middleware"
	"github.com/ariebrainware/cabinet-pediatrie/monitoring"
	"github.com/ariebrainware/cabinet-pediatrie/store"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	util.ConfigureLogger(cfg.AppEnv)
	log := util.Logger()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Error opening consultation database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Error getting database handle")
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	credentials := store.NewCredentialStore(db)
	if err := credentials.Initialize(ctx); err != nil {
		log.WithError(err).Error("Error initializing credential store")
		return
	}
	consultations := store.NewConsultationStore(db)
	if err := consultations.Initialize(ctx); err != nil {
		log.WithError(err).Error("Error initializing consultation store")
		return
	}

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, login rate limit kept in memory")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := monitoring.NewMetrics(reg)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := endpoint.NewRouter(endpoint.RouterConfig{
		AppName:       cfg.AppName,
		AllowedOrigin: cfg.CORSOrigin,
		Deps: middleware.Dependencies{
			Credentials:   credentials,
			Consultations: consultations,
			Gate:          &middleware.Gate{},
			Metrics:       metrics,
		},
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			Limit:  cfg.LoginRateLimit,
			Window: cfg.LoginRateWindow,
			Redis:  rdb,
		}),
	})

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Infof("%s listening", cfg.AppName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("error starting server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
}
