package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logias/internal/config"
	"logias/internal/loader"
	"logias/internal/logger"
	"logias/internal/notify"
	"logias/internal/session"
	"logias/internal/web"
	"logias/pkg/graceful"
	"logias/pkg/kafkaclient"
)

var (
	envFile string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "logias",
	Short: "Buscador de Logias Masónicas de Chile",
	Long: `Serves the lodge directory: a search page and a JSON API over a dataset
loaded once at startup from a file, URL, S3 object or Postgres table.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading LOGIAS_* variables")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides LOGIAS_ADDR")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	found, err := config.LoadEnv(envFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if !found {
		log.Debug("no .env file found, assuming environment variables are set directly", zap.String("path", envFile))
	}

	ctx, cancel := graceful.Context(ctx, log)
	defer cancel()

	source, err := loader.New(cfg.Source, log)
	if err != nil {
		return fmt.Errorf("configure source: %w", err)
	}

	recorder := notify.NewRecorder(100)
	sinks := notify.Multi{notify.NewLogNotifier(log), recorder}
	if cfg.Kafka.Enabled() {
		producer := kafkaclient.NewKafkaProducer(cfg.Kafka.Topic, cfg.Kafka.Brokers, log)
		producer.StartPublishing(ctx)
		defer producer.Stop()
		sinks = append(sinks, notify.NewKafkaNotifier(producer))
		log.Info("publishing notices to kafka", zap.String("topic", cfg.Kafka.Topic), zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	dir := session.New(source, sinks, log)
	dir.Start(ctx)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewServer(dir, recorder, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
