package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	backendURL string
	logFile    string
	opsAddr    string
)

// Version is stamped at build time.
var Version = "1.4.0"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Store Kiosk - self-service catalog and receipt terminal",
	Long: `Store Kiosk is the customer-facing terminal for Universal Auto Supply
and Bolt Center. It runs full screen, talks to the store backend over REST,
and lets customers browse the catalog, build a cart, print an order receipt
for the cashier, and rate their visit.

Configuration comes from KIOSK_-prefixed environment variables; the flags
below override the most commonly changed values.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Store backend base URL (overrides KIOSK_BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (overrides KIOSK_LOG_FILE)")
	rootCmd.PersistentFlags().StringVar(&opsAddr, "ops-addr", "", "Local ops listen address (overrides KIOSK_OPS_ADDR)")
}
