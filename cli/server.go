package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alwitt/scribe"
	"github.com/alwitt/scribe/api"
	"github.com/alwitt/scribe/config"
	"github.com/alwitt/scribe/db"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

// loadConfig read the service configuration and apply its log level
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.ApplyLogLevel()
}

// NewMigrateCommand create the post store tables
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the post store tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			dialector, err := cfg.Dialector()
			if err != nil {
				return err
			}
			client, err := db.NewConnection(dialector, cfg.SQLLogLevel())
			if err != nil {
				return err
			}
			if err := client.RunSQLInTransaction(cmd.Context(), db.DefineTables); err != nil {
				return fmt.Errorf("failed to define tables [%w]", err)
			}
			log.WithField("driver", cfg.DBDriver).Info("Post store tables ready")
			return nil
		},
	}
}

// NewServeCommand run the post service REST API
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the post service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			dialector, err := cfg.Dialector()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service, err := scribe.NewPostService(ctx, scribe.ServiceParams{
				DBDialector:        dialector,
				DBLogLevel:         cfg.SQLLogLevel(),
				PrimaryRSACertFile: cfg.RSACertFile,
				PrimaryRSAKeyFile:  cfg.RSAKeyFile,
				MaxTokenAge:        cfg.TokenMaxAge,
			})
			if err != nil {
				return err
			}

			server := api.NewServer(api.ServerParams{ListenAddr: cfg.ListenAddr}, service)
			serveErr := make(chan error, 1)
			go func() {
				log.WithField("listen", cfg.ListenAddr).Info("Starting post service")
				serveErr <- server.ListenAndServe()
			}()

			select {
			case err := <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("post service failed [%w]", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("Stopping post service")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
