package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/arjunkhanna514-star/apexclothing/pkg/app/config"
	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/service"
	"github.com/arjunkhanna514-star/apexclothing/pkg/infrastructure/catalog"
	"github.com/arjunkhanna514-star/apexclothing/pkg/infrastructure/eventlog"
	"github.com/arjunkhanna514-star/apexclothing/pkg/infrastructure/stripe"
	"github.com/arjunkhanna514-star/apexclothing/pkg/transport"
)

func main() {
	app := &cli.App{
		Name:  "apexstore",
		Usage: "ApexClothing storefront backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func serve(_ *cli.Context) error {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
			defer file.Close()
		}
	}

	cat, err := catalog.Load(cfg.CatalogPath, cfg.Currency)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": cfg.CatalogPath, "products": len(cat.List())}).Info("catalog loaded")

	dispatcher := eventlog.NewDispatcher()
	cartSvc := service.NewCartService(dispatcher)
	gateway := stripe.NewClient(cfg.StripeAPIURL, cfg.StripeSecretKey, cfg.PublicOrigin)
	checkoutSvc := service.NewCheckoutService(cartSvc, gateway, dispatcher)

	router := transport.Router(cat, cartSvc, checkoutSvc, transport.Defaults{
		Currency:   cfg.Currency,
		SuccessURL: cfg.SuccessURL,
		CancelURL:  cfg.CancelURL,
	})

	log.WithFields(log.Fields{"addr": cfg.HTTPAddr}).Info("starting server")

	killSignalChan := getKillSignalChan()
	srv := startServer(cfg.HTTPAddr, router)

	waitForKillSignalChan(killSignalChan)
	return srv.Shutdown(context.Background())
}

func startServer(addr string, handler http.Handler) *http.Server {
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()
	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
