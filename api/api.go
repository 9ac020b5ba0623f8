// Package api serves the interface registry and the host facts over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scitags/sysinfo-go/hostinfo"
	"github.com/scitags/sysinfo-go/types"
)

// Enumerator is satisfied by every interface enumeration backend.
type Enumerator interface {
	Enumerate() (*types.Registry, error)
	String() string
}

type Server struct {
	Config

	server *echo.Echo

	enumerator Enumerator
	host       func() (*types.HostReport, error)
	metrics    http.Handler
}

// New builds a server answering with enumerator's view of the host. The
// metrics handler is optional: /metrics is only routed when it's not nil.
func New(conf *Config, enumerator Enumerator, metrics http.Handler) *Server {
	if conf == nil {
		conf = &DefaultConfig
	}
	return &Server{
		Config:     *conf,
		enumerator: enumerator,
		host:       hostinfo.Collect,
		metrics:    metrics,
	}
}

func (s *Server) String() string {
	return "api"
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
}

func (s *Server) Init() error {
	slog.Debug("initialising the api server")
	s.server = echo.New()

	// Extend the context so that handlers reach the server.
	s.server.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&extendedContext{c, s.server.Routes(), s})
		}
	})

	// Configure the methods for each path
	s.server.GET("/", handleRoot)
	s.server.GET("/interfaces", handleInterfaces)
	s.server.GET("/interfaces/:name", handleInterface)
	s.server.GET("/host", handleHost)
	if s.metrics != nil {
		s.server.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	// Prevent the banner from showing up in the log
	s.server.HideBanner = true
	s.server.HidePort = true

	return nil
}

// Run serves until done is closed. It returns early with an error if the
// listener can't be started or dies.
func (s *Server) Run(done <-chan struct{}) error {
	slog.Debug("running the api server", "address", s.Address())

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Start(s.Address()); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("couldn't start the API server: %w", err)
	case <-done:
		slog.Debug("cleanly exiting the api server")
		return nil
	}
}

func (s *Server) Cleanup(ctx context.Context) error {
	slog.Debug("cleaning up the api server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down the API server: %w", err)
	}
	return nil
}

// ServeHTTP lets an initialised server be driven without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.ServeHTTP(w, r)
}
