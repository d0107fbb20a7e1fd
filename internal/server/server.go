// Package server answers period requests over websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lambdcalculus/periods/internal/client"
	"github.com/lambdcalculus/periods/internal/config"
	"github.com/lambdcalculus/periods/internal/formats"
	"github.com/lambdcalculus/periods/internal/session"
	"github.com/lambdcalculus/periods/internal/store"
	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"
)

const (
	App     = "periodd"
	Version = "0.1"
)

type PeriodServer struct {
	config  *config.Server
	store   *store.Store
	formats *formats.Registry

	slots   *session.Slots
	clients *client.List

	// Websocket handlers outlive http.Server.Shutdown once hijacked.
	handlers sync.WaitGroup

	registry *prometheus.Registry
	metrics  *Metrics

	logger *logger.Logger
}

// Tries to create and prepare the server. May fail if configs are not set appropriately.
func MakeServer(conf *config.File, log *logger.Logger) (*PeriodServer, error) {
	lang, err := language.Parse(conf.Server.DefaultLang)
	if err != nil {
		return nil, fmt.Errorf("server: Bad default_lang (%w).", err)
	}
	reg := formats.New(lang)
	if err := reg.Load(conf.Formats); err != nil {
		return nil, fmt.Errorf("server: Couldn't configure formats (%w).", err)
	}
	log.Debugf("Formats: %v", reg.Names())

	dbPath, err := config.Resolve(conf.Server.Database)
	if err != nil {
		return nil, fmt.Errorf("server: Couldn't locate database (%w).", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("server: Couldn't initialize database (%w).", err)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())

	srv := &PeriodServer{
		config:   &conf.Server,
		store:    st,
		formats:  reg,
		slots:    session.NewSlots(conf.Server.MaxClients),
		clients:  client.NewList(),
		registry: promReg,
		metrics:  NewMetrics(promReg),
		logger:   log,
	}
	srv.logger.Debugf("Successfully loaded server configuration: %#v", conf.Server)
	return srv, nil
}

// Formats returns the formats the server offers.
func (srv *PeriodServer) Formats() *formats.Registry {
	return srv.formats
}

// Handler returns the HTTP handler: websockets on "/" and Prometheus
// metrics on "/metrics".
func (srv *PeriodServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", srv.metricsHandler())
	mux.HandleFunc("/", srv.wsEndpoint)
	return mux
}

// Run serves until ctx is done, then shuts down and closes the database.
func (srv *PeriodServer) Run(ctx context.Context) error {
	srv.logger.Info("Starting server.")
	httpServer := &http.Server{
		Addr:           fmt.Sprintf(":%v", srv.config.PortWS),
		Handler:        srv.Handler(),
		ReadTimeout:    srv.config.ReadTimeout.Std(),
		MaxHeaderBytes: 1 << 20,
	}

	errs := make(chan error, 1)
	go func() {
		srv.logger.Infof("Listening WS on port %v.", srv.config.PortWS)
		errs <- httpServer.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errs:
	case <-ctx.Done():
		srv.logger.Info("Shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = httpServer.Shutdown(shutdownCtx)
		srv.disconnectAll("server shutting down")
	}
	if cerr := srv.Close(); cerr != nil {
		srv.logger.Error(cerr.Error())
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// disconnectAll closes every client connection and waits for their handlers
// to return.
func (srv *PeriodServer) disconnectAll(reason string) {
	for _, c := range srv.clients.Clients() {
		c.Disconnect(reason)
	}
	srv.handlers.Wait()
}

// Close releases the database.
func (srv *PeriodServer) Close() error {
	return srv.store.Close()
}
