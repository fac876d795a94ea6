package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bluebird/internal/db"
	"bluebird/internal/server"
)

// Default admin token, overridable with ADMIN_TOKEN. Only its bcrypt hash is
// kept in memory after startup.
const defaultAdminToken = "nNuMPs82ERXOwJ4zvSxA"

func main() {
	godotenv.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if os.Getenv("BLUEBIRD_ENV") == "prod" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	log := logger.WithField("service", "bluebird")

	port := getenv("PORT", "8080")
	dbPath := getenv("DB_PATH", "bluebird.db")
	adminToken := getenv("ADMIN_TOKEN", defaultAdminToken)

	database, err := db.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	srv, err := server.New(database, log, adminToken)
	if err != nil {
		log.Fatal(err)
	}

	httpSrv := &http.Server{Addr: ":" + port, Handler: srv.Router()}
	go func() {
		log.Infof("listening on :%s", port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-srv.StopRequested():
		log.Info("admin stop requested")
	case s := <-sig:
		log.Infof("received signal %s", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("server stopped")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
