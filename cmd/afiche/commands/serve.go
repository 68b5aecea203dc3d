package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
	"github.com/DANIELNAHUN/afiche-generator/internal/version"
	"github.com/DANIELNAHUN/afiche-generator/logger"
	"github.com/DANIELNAHUN/afiche-generator/server"
)

// ServeCmd starts the HTTP API server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the flyer generation API server",
	Long: `Launch the HTTP API: session authentication, flyer generation and
artifact download endpoints, plus the background storage sweeper.`,
	RunE: runServe,
}

var servePort int

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides configuration)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	srv, err := server.New(cfg, logger.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	printStartupBanner(cfg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return errors.Wrap(err, "server failed")
	case <-sigChan:
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return fmt.Errorf("shutdown error: %w", err)
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(cfg *config.Config) {
	info := version.Get()

	pterm.DefaultHeader.WithFullWidth().Printf("Afiche - Generador de Recursos")
	pterm.Println()
	pterm.Info.Printf("Version:   %s (commit %s)\n", info.Version, info.Short())
	pterm.Info.Printf("Port:      %d\n", cfg.Server.Port)
	pterm.Info.Printf("Templates: %s\n", cfg.Templates.Dir)
	pterm.Info.Printf("Storage:   %s (cleanup after %dh)\n", cfg.Storage.Dir, cfg.Storage.CleanupHours)
	pterm.Println()
	pterm.Println(pterm.LightBlue("Press Ctrl+C to stop"))
	pterm.Println()
}
