// Package main provides the CLI entry point for the fitness data ETL.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fitness-data-pipeline/internal/config"
	"fitness-data-pipeline/internal/fetch"
	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/pipeline"
	"fitness-data-pipeline/pkg/utils"
)

// Exit codes
const (
	ExitRuntimeError = 1
	ExitInputError   = 2
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Process command flags
	inputPath string
	format    string
	outputDir string

	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Fitness data ETL - fetch and process exercise and gym-member datasets",
	Long: `etl fetches the ExerciseDB and Kaggle gym-member datasets and runs
them through the processing pipeline (validate, clean, enrich,
deduplicate, export).

Examples:
  # Download the raw datasets
  etl fetch exercises
  etl fetch members

  # Process the newest raw files
  etl process all

  # Process a specific file to CSV only
  etl process exercises --input data/raw/exercisedb_raw_20250101_120000.json --format csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		switch {
		case verbose:
			logger.SetLevel(slog.LevelDebug)
		case quiet:
			logger.SetLevel(slog.LevelError)
		default:
			logger.SetLevelFromString(cfg.LogLevel)
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a raw dataset into the raw data directory",
}

var fetchExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Download the ExerciseDB exercise list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := fetch.NewExerciseDBFetcher(cfg.Fetch, cfg.RawDataDir)
		path, err := f.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var fetchMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "Download the Kaggle gym-members dataset (requires the kaggle CLI)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := fetch.NewKaggleFetcher(cfg.Fetch, cfg.RawDataDir)
		path, err := f.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the processing pipeline over a raw dataset",
}

var processExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Process the exercise dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := processOptions("exercisedb_raw_*.json")
		if err != nil {
			return err
		}
		result, err := pipeline.RunExercises(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}

var processMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "Process the gym-members dataset",
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := processOptions("gym_members_raw_*.csv")
		if err != nil {
			return err
		}
		result, err := pipeline.RunMembers(cmd.Context(), opts)
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	},
}

var processAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Process both datasets sequentially",
	RunE: func(cmd *cobra.Command, _ []string) error {
		exOpts, err := processOptions("exercisedb_raw_*.json")
		if err != nil {
			return err
		}
		result, err := pipeline.RunExercises(cmd.Context(), exOpts)
		if err != nil {
			return fmt.Errorf("exercises: %w", err)
		}
		printResult(result)

		memOpts, err := processOptions("gym_members_raw_*.csv")
		if err != nil {
			return err
		}
		result, err = pipeline.RunMembers(cmd.Context(), memOpts)
		if err != nil {
			return fmt.Errorf("members: %w", err)
		}
		printResult(result)
		return nil
	},
}

// processOptions resolves the input file (explicit flag or newest raw
// file matching pattern) and the output directory.
func processOptions(pattern string) (pipeline.Options, error) {
	input := inputPath
	if input == "" {
		var err error
		input, err = utils.LatestMatch(cfg.RawDataDir, pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "no raw input found (%v), run `etl fetch` first\n", err)
			os.Exit(ExitInputError)
		}
	}
	outDir := outputDir
	if outDir == "" {
		outDir = cfg.ProcessedDataDir
	}
	return pipeline.Options{InputPath: input, Format: format, OutDir: outDir}, nil
}

func printResult(result pipeline.Result) {
	for f, path := range result.Files {
		fmt.Printf("%s: %s\n", f, path)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	processCmd.PersistentFlags().StringVar(&inputPath, "input", "", "raw input file (default: newest matching file in the raw data dir)")
	processCmd.PersistentFlags().StringVar(&format, "format", "both", "export format: json, csv, xlsx or both")
	processCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "output directory (default: processed data dir)")

	fetchCmd.AddCommand(fetchExercisesCmd, fetchMembersCmd)
	processCmd.AddCommand(processExercisesCmd, processMembersCmd, processAllCmd)
	rootCmd.AddCommand(fetchCmd, processCmd)
}
