package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/storekiosk/pkg/api"
	"github.com/marshallshelly/storekiosk/pkg/session"
)

// checkCmd verifies backend connectivity without starting the UI
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify backend connectivity and credentials",
	Long: `Check that the store backend is reachable and the kiosk credentials
work, then report how much catalog data the backend would serve. Useful
when provisioning a new terminal.

Examples:
  kiosk check
  kiosk check --backend http://pos.local:8000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	ctx := context.Background()

	fmt.Printf("Backend:  %s\n", cfg.BackendURL)

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	fmt.Println("Ping:     ok")

	token, err := client.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	sess, err := session.New(token)
	if err != nil {
		return err
	}
	fmt.Println("Login:    ok")

	products, err := client.Products(ctx, sess, api.ProductFilter{})
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	main, err := client.MainCategories(ctx, sess)
	if err != nil {
		return fmt.Errorf("fetch main categories: %w", err)
	}
	sub, err := client.SubCategories(ctx, sess)
	if err != nil {
		return fmt.Errorf("fetch sub categories: %w", err)
	}

	fmt.Printf("Catalog:  %d products, %d main categories, %d sub categories\n",
		len(products), len(main), len(sub))
	return nil
}
