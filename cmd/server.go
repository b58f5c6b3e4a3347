package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/whoamihappyhacking/vidscribe/internal/vidscribe/conf"
	vshttp "github.com/whoamihappyhacking/vidscribe/internal/vidscribe/http"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP and MCP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cfg *conf.Config) error {
	svc := vshttp.NewService(cfg)

	cfg.Watch(func(*conf.Config) {
		svc.ReloadSpeech()
	})

	if err := svc.Start(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	return svc.Stop()
}
