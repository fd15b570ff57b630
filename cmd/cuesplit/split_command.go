package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cuesplit/internal/config"
	"cuesplit/internal/deps"
	"cuesplit/internal/encoder"
	"cuesplit/internal/history"
	"cuesplit/internal/logging"
	"cuesplit/internal/runner"
	"cuesplit/internal/workflow"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir        string
		encoderType      string
		quality          float64
		coverPath        string
		workers          int
		allowNonstandard bool
		noTitleCase      bool
	)

	cmd := &cobra.Command{
		Use:   "split <cue>",
		Short: "Split, encode, and tag the tracks of a cue sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base

			flags := cmd.Flags()
			if flags.Changed("encoder") {
				cfg.Encoder.Type = config.NormalizeEncoderType(encoderType)
				if _, ok := encoder.Lookup(cfg.Encoder.Type); !ok {
					return fmt.Errorf("unsupported encoder %q (expected %s)", encoderType, strings.Join(config.EncoderTypes(), ", "))
				}
			}
			if flags.Changed("quality") {
				cfg.Encoder.Quality = quality
			}
			if flags.Changed("workers") {
				cfg.Workflow.Workers = workers
			}
			if flags.Changed("allow-nonstandard") {
				cfg.Workflow.AllowNonstandard = allowNonstandard
			}
			if noTitleCase {
				cfg.Tagging.TitleCase = false
			}
			if outputDir != "" {
				if cfg.Paths.OutputDir, err = config.ExpandPath(outputDir); err != nil {
					return fmt.Errorf("resolve output dir: %w", err)
				}
			}
			if coverPath != "" {
				if cfg.Tagging.CoverPath, err = config.ExpandPath(coverPath); err != nil {
					return fmt.Errorf("resolve cover path: %w", err)
				}
			}

			if missing := deps.MissingRequired(deps.CheckBinaries(deps.AudioRequirements(&cfg))); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, m := range missing {
					names = append(names, fmt.Sprintf("%s (%s)", m.Name, m.Detail))
				}
				return fmt.Errorf("missing required tools: %s", strings.Join(names, ", "))
			}

			logger, err := logging.NewFromConfig(&cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cmd.Context(), cfg.HistoryPath())
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
			}

			manager := workflow.NewManager(&cfg, runner.New(cfg.Workflow.CommandTimeout), store, logger)
			result, err := manager.Split(cmd.Context(), workflow.Request{CuePath: args[0]})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(result.Outputs))
			for _, o := range result.Outputs {
				rows = append(rows, []string{strconv.Itoa(o.Track), dash(o.Title), filepath.Base(o.Path)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "File"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
				shouldColorize(out),
			))
			fmt.Fprintf(out, "Wrote %d tracks to %s in %s (run %s)\n",
				len(result.Outputs), cfg.Paths.OutputDir, result.Elapsed.Round(time.Millisecond), result.RunID)
			if result.OriginalsDir != "" {
				fmt.Fprintf(out, "Originals copied to %s\n", result.OriginalsDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().StringVarP(&encoderType, "encoder", "e", "", "Encoder: "+strings.Join(config.EncoderTypes(), ", "))
	cmd.Flags().Float64VarP(&quality, "quality", "q", 0, "Encoder quality value")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Front cover image to embed and copy")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel encoders (0 uses every CPU)")
	cmd.Flags().BoolVar(&allowNonstandard, "allow-nonstandard", false, "Accept one-file-per-track cue sheets")
	cmd.Flags().BoolVar(&noTitleCase, "no-title-case", false, "Keep cue sheet text as written")
	return cmd
}
