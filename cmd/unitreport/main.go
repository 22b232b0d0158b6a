// Package main provides the CLI entry point for unitreport.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/orderportal/unitreport/internal/config"
	"github.com/spf13/cobra"
)

// Environment variables, also read from a .env file in the working
// directory. Flags take precedence.
const (
	envBaseDir = "UNITREPORT_BASE_DIR"
	envConfig  = "UNITREPORT_CONFIG"
)

var (
	year       int
	configPath string
	baseDir    string
	verbose    bool

	profile *config.Profile
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "unitreport",
		Short: "Merge reporting portal exports into annual report spreadsheets",
		Long: `unitreport reads the spreadsheet exports of the reporting portal, resolves
every record to its reporting unit and platform, and writes the merged
report spreadsheets and figures for the annual infrastructure report.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().IntVar(&year, "year", config.LatestYear(), "Report year of the built-in profile")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Profile file (default: $"+envConfig+" or the built-in profile for --year)")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "Override the profile's base directory (default: $"+envBaseDir+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(
		newExtractCmd(),
		newMergeCmd(),
		newChartCmd(),
		newLookupCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger.With("run", uuid.New().String()[:8]))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if configPath == "" {
		configPath = os.Getenv(envConfig)
	}
	if baseDir == "" {
		baseDir = os.Getenv(envBaseDir)
	}

	p, err := config.Load(year, configPath)
	if err != nil {
		return err
	}
	if baseDir != "" {
		if p.BaseDir, err = config.ExpandHome(baseDir); err != nil {
			return err
		}
	}
	profile = p
	slog.Debug("loaded profile", "year", p.Year, "base_dir", p.BaseDir, "units", len(p.Entities))
	return nil
}
