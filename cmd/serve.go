package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scitags/sysinfo-go"
	"github.com/scitags/sysinfo-go/api"
	"github.com/scitags/sysinfo-go/exporter"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interfaces, host facts and metrics over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Debug("running with configuration", "conf", conf)

		e, err := sysinfo.NewEnumerator(conf.Backend, &conf.Netlink)
		if err != nil {
			return err
		}

		exp, err := exporter.NewExporter(&conf.Exporter, e)
		if err != nil {
			return fmt.Errorf("couldn't create the exporter: %w", err)
		}

		server := api.New(&conf.Api, e, exp.Handler())
		if err := server.Init(); err != nil {
			return fmt.Errorf("error setting up %s: %w", server, err)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		doneChan := make(chan struct{})
		runErr := make(chan error, 1)
		go func() {
			runErr <- server.Run(doneChan)
		}()

		slog.Info("serving", "address", server.Address(), "backend", e)

		var errs error
		select {
		case sig := <-sigChan:
			slog.Info("caught a signal, exiting", "signal", sig)
			close(doneChan)
			errs = errors.Join(errs, <-runErr)
		case err := <-runErr:
			errs = errors.Join(errs, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Cleanup(ctx); err != nil {
			errs = errors.Join(errs, err)
		}
		return errs
	},
}
