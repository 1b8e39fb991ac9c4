package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amolina-dev/postapi/internal/config"
	"github.com/amolina-dev/postapi/internal/db"
	"github.com/amolina-dev/postapi/internal/handlers"
	"github.com/amolina-dev/postapi/internal/middleware"
	"github.com/amolina-dev/postapi/internal/server"
	"github.com/amolina-dev/postapi/internal/store"
	"github.com/amolina-dev/postapi/internal/token"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if cfg.Env != "dev" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var st store.Store
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg)
		if err != nil {
			log.WithError(err).Fatal("db connect")
		}
		defer dbConn.Close()

		if err := db.Migrate(dbConn); err != nil {
			log.WithError(err).Fatal("db migrate")
		}
		st = store.NewPostgres(dbConn)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	secret := cfg.TokenSecret
	if secret == "" {
		// tokens won't survive a restart without a configured secret
		secret = randomSecret()
		log.Warn("TOKEN_SECRET not set, using a generated secret")
	}

	issuer, err := token.NewIssuer(secret, cfg.TokenTTL)
	if err != nil {
		log.WithError(err).Fatal("token issuer")
	}

	h := handlers.NewHandler(st, issuer, log)
	srv := server.New(cfg, log, h, middleware.Auth(issuer, st))

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		log.WithField("addr", httpSrv.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
