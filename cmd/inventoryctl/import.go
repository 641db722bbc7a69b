package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/shaikazeem2001/inventory/internal/importer"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
)

func newImportCmd(a *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from a CSV file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := upload.NewStore(a.cfg.Upload.Dir, a.cfg.Upload.MaxBytes)
			return importFile(cmd.Context(), a.stores, store, args[0], username, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&username, "as", adminUsername, "User the import is recorded under")
	return cmd
}

func importFile(ctx context.Context, stores *repo.Stores, store *upload.Store, path, username string, out io.Writer) error {
	user, err := stores.Users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrUserNotFound) {
		return fmt.Errorf("user %q not found", username)
	}
	if err != nil {
		return err
	}

	file, err := store.StoreFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	im := importer.New(stores.Products, stores.Activity)
	report := im.RunSource(ctx, file, importer.Actor{UserID: user.ID, Username: user.Username})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Body); err != nil {
		return err
	}
	if report.Status != http.StatusCreated {
		return fmt.Errorf("import failed with status %d", report.Status)
	}
	return nil
}
