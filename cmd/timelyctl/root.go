package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"timely/internal/app"
	"timely/internal/config"

	"github.com/spf13/cobra"
)

// runFunc is the body of a command once the application is open
type runFunc func(ctx context.Context, a *app.App) (any, error)

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:          "timelyctl",
		Short:        "Operate on Timely portal data",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database", "", "database URL (defaults to DATABASE_URL)")

	// withApp opens storage, runs fn and prints its result as JSON
	withApp := func(fn runFunc) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if databaseURL != "" {
				cfg.DatabaseURL = databaseURL
			}
			logger := cfg.SetupLogger().Output(cmd.ErrOrStderr())

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			storage, err := app.OpenStorage(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("opening storage: %w", err)
			}
			defer func() {
				if err := storage.Close(); err != nil {
					logger.Warn().Err(err).Msg("Error closing database")
				}
			}()

			result, err := fn(ctx, app.New(cfg, storage.KV, logger))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
	}

	root.AddCommand(
		newThreadsCmd(withApp),
		newTimelineCmd(withApp),
		newRequestsCmd(withApp),
		newImportCmd(withApp),
	)
	return root
}

// readJSONFile decodes the JSON document at path into dest
func readJSONFile(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
