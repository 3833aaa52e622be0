package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GothamSiteStudio/picture-auto-edit/internal/store"
	"github.com/spf13/cobra"
)

// dbURL is the connection string for the optional processing ledger.
var dbURL string

// Version is the application version.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "picture-auto-edit",
	Short:   "Blur the background, sharpen the center, stamp the logo",
	Long:    "Transforms photos into stylized composites: blurred background, enhanced center-focus region with a feathered rounded mask, and an optional logo on a rounded plate.",
	Version: Version, // This enables the --version flag
}

// openStore connects to the processing ledger. Unlike the image pipeline the
// ledger is optional, so the connection is made lazily by the commands that
// actually need it instead of in a PersistentPreRun.
func openStore(ctx context.Context) (*store.Store, error) {
	url := dbURL
	if url == "" {
		if host := os.Getenv("POSTGRES_HOST"); host != "" {
			user := os.Getenv("POSTGRES_USER")
			pass := os.Getenv("POSTGRES_PASSWORD")
			name := os.Getenv("POSTGRES_DB")
			port := os.Getenv("POSTGRES_PORT")
			if port == "" {
				port = "5432"
			}
			url = fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
		} else {
			// Fallback to local default if no env vars are present
			url = "postgres://localhost:5432/picture_auto_edit"
		}
	}

	db, err := store.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// This tells Cobra not to print the version in the help text, which is cleaner.
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string for the processing ledger (default: postgres://localhost:5432/picture_auto_edit)")
}
