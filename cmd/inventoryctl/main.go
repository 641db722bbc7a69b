package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaikazeem2001/inventory/internal/config"
	"github.com/shaikazeem2001/inventory/internal/repo"
)

// app carries what every subcommand needs once the root command has connected.
type app struct {
	cfg    config.Config
	stores *repo.Stores
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Administrative tasks for the inventory service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			stores, err := repo.Open(cfg.Storage)
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			a.cfg = cfg
			a.stores = stores
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Connected to %s\n", cfg.Storage.Driver)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.stores == nil {
				return nil
			}
			return a.stores.Close()
		},
	}

	root.AddCommand(newSetupAdminCmd(a), newPromoteAdminCmd(a), newImportCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Error:", err)
		os.Exit(1)
	}
}
