package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cuesplit/internal/cuesheet"
	"cuesplit/internal/workflow"
)

type inspectView struct {
	Path   string          `json:"path" yaml:"path"`
	Layout string          `json:"layout" yaml:"layout"`
	Tracks int             `json:"tracks" yaml:"tracks"`
	Sheet  *cuesheet.Sheet `json:"sheet" yaml:"sheet"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var format string
	var titleCase bool
	var encoding string

	cmd := &cobra.Command{
		Use:   "inspect <cue>",
		Short: "Parse a cue sheet and show its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format, err := normalizeFormat(format, formatTable, formatJSON, formatYAML, formatCue)
			if err != nil {
				return err
			}
			if encoding == "" {
				encoding = cfg.Input.Encoding
			}

			path := args[0]
			sheet, err := cuesheet.ParseFile(path, cuesheet.Options{Encoding: encoding})
			if err != nil {
				return fmt.Errorf("inspect %s: %w", filepath.Base(path), err)
			}
			if titleCase {
				workflow.ApplyTitleCase(sheet)
			}

			view := inspectView{
				Path:   path,
				Layout: sheet.Layout().String(),
				Tracks: sheet.TrackCount(),
				Sheet:  sheet,
			}
			switch format {
			case formatJSON:
				return writeJSON(cmd, view)
			case formatYAML:
				return writeYAML(cmd, view)
			case formatCue:
				_, err := io.WriteString(cmd.OutOrStdout(), cuesheet.Render(sheet))
				return err
			}
			renderInspectTable(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json, yaml, or cue")
	cmd.Flags().BoolVar(&titleCase, "title-case", false, "Title-case performer, songwriter, and title values")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Cue sheet character set (defaults to input.encoding)")
	return cmd
}

func renderInspectTable(out io.Writer, view inspectView) {
	sheet := view.Sheet
	fmt.Fprintf(out, "Title:     %s\n", dash(sheet.Title))
	fmt.Fprintf(out, "Performer: %s\n", dash(sheet.Performer))
	if sheet.SongWriter != "" {
		fmt.Fprintf(out, "Songwriter: %s\n", sheet.SongWriter)
	}
	if sheet.Catalog != "" {
		fmt.Fprintf(out, "Catalog:   %s\n", sheet.Catalog)
	}
	for _, c := range sheet.Comments {
		fmt.Fprintf(out, "REM %s: %s\n", c.Name, c.Value)
	}
	fmt.Fprintf(out, "Layout:    %s (%d files, %d tracks)\n\n", view.Layout, len(sheet.Files), view.Tracks)

	rows := make([][]string, 0, view.Tracks)
	for _, file := range sheet.Files {
		for _, track := range file.Tracks {
			start := "-"
			if idx, ok := track.FindIndex(1); ok {
				start = idx.Time.String()
			}
			pregap := "-"
			if idx, ok := track.FindIndex(0); ok {
				pregap = idx.Time.String()
			} else if track.PreGap != nil {
				pregap = track.PreGap.Time.String()
			}
			rows = append(rows, []string{
				strconv.Itoa(track.Number),
				dash(track.Title),
				dash(track.Performer),
				start,
				pregap,
				file.Name,
			})
		}
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Performer", "Start", "Pregap", "File"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		shouldColorize(out),
	))
}
