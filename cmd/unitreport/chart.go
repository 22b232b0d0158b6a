package main

import (
	"log/slog"
	"os"

	"github.com/orderportal/unitreport/pkg/unitreport/chart"
	"github.com/spf13/cobra"
)

func newChartCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "chart [chart...]",
		Short: "Draw report figures",
		Long:  "Draw the named charts, or all charts of the profile when none is named.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir != "" {
				profile.FiguresDir = outDir
			}
			lookup, err := profile.Lookup()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				for _, c := range profile.Charts {
					names = append(names, c.Name)
				}
			}

			for _, name := range names {
				c, err := profile.FindChart(name)
				if err != nil {
					return err
				}
				spec, countOpts, err := profile.ChartSpec(name)
				if err != nil {
					return err
				}
				records, err := readSource(profile, lookup, c.Source)
				if err != nil {
					return err
				}
				counts := chart.Count(records, countOpts)

				path := profile.FigurePath(name)
				if err := os.MkdirAll(profile.FigurePath(""), 0755); err != nil {
					return err
				}
				if err := chart.Save(spec, counts, path); err != nil {
					return err
				}
				slog.Info("wrote chart", "file", path, "records", counts.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default: the profile's figures directory)")

	return cmd
}
