// storefront is a development shell around the client core: it drives
// the cart, the checkout message builder, and the two session contexts
// against a running backend. Wiring is explicit and lives here.
package main

import (
	"fmt"
	"os"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgPath string
	verbose bool

	cfg       config.Config
	logger    *zap.Logger
	fileStore *store.FileStore
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Client core for the climatization storefront",
	Long: `storefront drives the client-side core of the shop: the persisted
cart, the WhatsApp checkout message, and the admin/customer sessions
against the remote backend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("zap build: %w", err)
		}

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("config.Load: %w", err)
		}

		fileStore, err = store.NewFile(cfg.Storage.Dir, logger)
		if err != nil {
			return fmt.Errorf("store.NewFile: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "storefront.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(loginCmd, whoamiCmd, logoutCmd, registerCmd, profileCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
