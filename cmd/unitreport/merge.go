package main

import (
	"log/slog"
	"os"

	"github.com/orderportal/unitreport/pkg/unitreport/report"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "merge [report...]",
		Short: "Write merged report spreadsheets",
		Long:  "Write the named merged reports, or all reports of the profile when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" {
				profile.MergedDir = outDir
			}
			lookup, err := profile.Lookup()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				for _, r := range profile.Reports {
					names = append(names, r.Name)
				}
			}

			w := &report.Writer{Lookup: lookup}
			for _, name := range names {
				r, err := profile.FindReport(name)
				if err != nil {
					return err
				}
				spec, err := profile.ReportSpec(name)
				if err != nil {
					return err
				}
				records, err := readSources(profile, lookup, r.Sources)
				if err != nil {
					return err
				}

				path := profile.MergedPath(name)
				if err := os.MkdirAll(profile.MergedPath(""), 0755); err != nil {
					return err
				}
				if err := w.Write(path, spec, records); err != nil {
					return err
				}
				slog.Info("wrote report", "file", path, "records", len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default: the profile's merged directory)")

	return cmd
}
