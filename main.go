package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/survey-portal/apiclient"
	"github.com/mbolis/survey-portal/app"
	"github.com/mbolis/survey-portal/config"
	"github.com/mbolis/survey-portal/log"
	"github.com/mbolis/survey-portal/routes"
	"github.com/mbolis/survey-portal/session"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	app := app.App{
		Client: apiclient.New(cfg.APIBaseURL),
		Store:  session.NewStore(cfg.SessionSecret, cfg.SessionTTL),
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
