package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/corewerks/taskpool/pkg/poolconfig"
)

var (
	configFile string
	debug      bool
)

func main() {
	pflag.StringVarP(&configFile, "config", "c", "", "config file path")
	pflag.BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	pflag.Parse()

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := poolconfig.New(configFile)
	if err != nil {
		log.WithError(err).Fatal("failed to read config")
	}
	log.WithField("workers", cfg.Pool.Workers).
		WithField("sequential", cfg.Validation.DisableConcurrency).
		Info("taskpoold bootstrap")

	reg := prometheus.NewRegistry()
	poolLogger := log.WithField("component", "pool").WithField("service", "taskpoold")
	engine, err := poolconfig.BuildEngine(cfg, reg, poolLogger)
	if err != nil {
		log.WithError(err).Fatal("failed to construct pool")
	}

	ctx, cancel := context.WithCancel(context.Background())
	setupCloseHandler(cancel, engine)

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{Addr: cfg.Admin.Address, Handler: router}
	go func() {
		log.WithField("address", cfg.Admin.Address).Info("admin server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("admin server failed")
		}
	}()

	<-ctx.Done()
	_ = srv.Close()
}

func setupCloseHandler(cancel context.CancelFunc, engine interface{ Close() }) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-c
		log.WithField("signal", sig.String()).Info("received signal, shutting down")
		engine.Close()
		cancel()
		time.Sleep(200 * time.Millisecond)
	}()
}
