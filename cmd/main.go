// Package main provides the CLI entrypoint for the CNPJ lookup service.
// It loads configuration, initializes logging and runs the HTTP servers.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sincromei/internal/config"
	"sincromei/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCommand builds the single command of the binary. The config flag names
// an optional .env or yaml file; the environment always takes precedence.
func rootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "sincromei",
		Short:         "Serves CNPJ registry lookups with a yearly MEI status list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("loading config ...")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err //nolint: wrapcheck
			}

			l, closeLogger, err := logger.New(logger.Options{
				Environment:  cfg.Environment,
				Level:        cfg.Log.Level,
				ErrorFile:    cfg.Log.ErrorFile,
				CombinedFile: cfg.Log.CombinedFile,
			})
			if err != nil {
				return fmt.Errorf("could not create logger: %w", err)
			}
			defer func() {
				if err := closeLogger(); err != nil {
					log.Println(err)
				}
			}()

			ctx := logger.WithLogger(cmd.Context(), l)

			defer func() {
				if p := recover(); p != nil {
					logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
					_ = l.Sync()

					panic(p)
				}
			}()

			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", ".env", "Config File Path")

	return cmd
}

func main() {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
