package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/USA-RedDragon/gory/internal/config"
	"github.com/USA-RedDragon/gory/internal/logging"
	"github.com/USA-RedDragon/gory/internal/metrics"
	"github.com/USA-RedDragon/gory/internal/server"
	"github.com/USA-RedDragon/gory/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/ztrue/shutdown"
	"golang.org/x/sync/errgroup"
)

func NewCommand(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gory",
		Short:   "Web frontend for the mountain trips API",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	config, err := config.LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := logging.NewLogger(os.Stdout, config.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	slog.Info("gory", "version", cmd.Annotations["version"], "commit", cmd.Annotations["commit"])

	stopTracing, err := tracing.Setup(cmd.Context(), config, cmd.Annotations["version"])
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	registerer := prometheus.DefaultRegisterer
	if cmd.Annotations["version"] == "testing" {
		// Tests build several commands in one process.
		registerer = prometheus.NewRegistry()
	}
	metrics := metrics.NewMetrics(registerer)

	client, err := api.NewClient(config, metrics)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	slog.Info("Using trips API", "base_url", client.BaseURL())

	slog.Info("Starting HTTP server")
	server, err := server.NewServer(config, client, metrics)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}
	err = server.Start()
	if err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	stop := func(_ os.Signal) {
		slog.Info("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		errGrp := errgroup.Group{}

		errGrp.Go(func() error {
			return server.Stop(ctx)
		})

		errGrp.Go(func() error {
			return stopTracing(ctx)
		})

		err := errGrp.Wait()
		if err != nil {
			slog.Error("Shutdown error", "error", err.Error())
		}
		slog.Info("Shutdown complete")
	}

	if cmd.Annotations["version"] == "testing" {
		doneChannel := make(chan struct{})
		go func() {
			slog.Info("Sleeping for 5 seconds")
			time.Sleep(5 * time.Second)
			slog.Info("Sending SIGTERM")
			stop(syscall.SIGTERM)
			doneChannel <- struct{}{}
		}()
		<-doneChannel
	} else {
		shutdown.AddWithParam(stop)
		shutdown.Listen(syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	}

	return nil
}
