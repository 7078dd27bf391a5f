package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/storekiosk/cmd/kiosk/ops"
	"github.com/marshallshelly/storekiosk/cmd/kiosk/tui"
	"github.com/marshallshelly/storekiosk/pkg/api"
	"github.com/marshallshelly/storekiosk/pkg/config"
	"github.com/marshallshelly/storekiosk/pkg/logging"
	"github.com/marshallshelly/storekiosk/pkg/metrics"
)

// runCmd starts the kiosk UI
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the kiosk full screen",
	Long: `Start the kiosk terminal. The UI takes over the terminal until
interrupted; logs go to the configured log file and a local ops server
exposes /healthz and /metrics for fleet monitoring.

Examples:
  kiosk run                                  # Use environment configuration
  kiosk run --backend http://pos.local:8000  # Point at a different backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKiosk()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if opsAddr != "" {
		cfg.OpsAddr = opsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runKiosk() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogFile, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer closer.Close()

	mtr := metrics.New()
	board := ops.NewBoard()
	go ops.NewServer(cfg.OpsAddr, Version, board, logging.Component(log, "ops")).Start()

	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout)

	uiLog := logging.Component(log, "ui")
	uiLog.WithField("backend", cfg.BackendURL).Info("kiosk starting")

	if err := tui.Run(tui.Deps{
		Config:  cfg,
		Client:  client,
		Log:     uiLog,
		Metrics: mtr,
		Board:   board,
	}); err != nil {
		return fmt.Errorf("run kiosk: %w", err)
	}

	uiLog.Info("kiosk stopped")
	return nil
}
