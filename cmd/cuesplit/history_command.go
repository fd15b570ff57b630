package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cuesplit/internal/history"
)

type historyView struct {
	ID         string     `json:"id"`
	CuePath    string     `json:"cue_path"`
	OutputDir  string     `json:"output_dir"`
	Encoder    string     `json:"encoder"`
	Layout     string     `json:"layout,omitempty"`
	Tracks     int        `json:"tracks"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent split runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (history.enabled = false)")
				return nil
			}
			store, err := history.Open(cmd.Context(), cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list history: %w", err)
			}

			if jsonOut {
				views := make([]historyView, 0, len(runs))
				for _, r := range runs {
					views = append(views, historyView{
						ID:         r.ID,
						CuePath:    r.CuePath,
						OutputDir:  r.OutputDir,
						Encoder:    r.Encoder,
						Layout:     r.Layout,
						Tracks:     r.Tracks,
						Status:     string(r.Status),
						Error:      r.Error,
						StartedAt:  r.StartedAt,
						FinishedAt: r.FinishedAt,
					})
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				duration := "-"
				if d := r.Duration(); d > 0 {
					duration = d.Round(time.Second).String()
				}
				rows = append(rows, []string{
					shortID(r.ID),
					r.StartedAt.Local().Format("2006-01-02 15:04"),
					string(r.Status),
					dash(r.Layout),
					strconv.Itoa(r.Tracks),
					r.Encoder,
					duration,
					filepath.Base(r.CuePath),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Status", "Layout", "Tracks", "Encoder", "Took", "Cue"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
				shouldColorize(out),
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 shows all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
