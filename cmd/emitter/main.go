package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/application"
	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/metrics"
)

var (
	configPath  string
	logLevel    string
	metricsFile string

	cfg      application.Config
	recorder *metrics.Recorder
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "emitter",
		Short:         "Emisor de la capa de enlace: Hamming / Fletcher-16 sobre WebSocket",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = application.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if metricsFile != "" {
				cfg.Metrics.Textfile = metricsFile
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.Log.SlogLevel(),
			})))
			recorder = metrics.NewRecorder()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Metrics.Textfile == "" {
				return nil
			}
			if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				return fmt.Errorf("error escribiendo métricas: %w", err)
			}
			slog.Debug("Metrics written", "path", cfg.Metrics.Textfile)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "emitter.yaml", "Archivo de configuración YAML")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Nivel de log (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Archivo .prom donde volcar las métricas al terminar")

	root.AddCommand(newSendCmd(), newEncodeCmd(), newDatasetCmd(), newChannelCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
