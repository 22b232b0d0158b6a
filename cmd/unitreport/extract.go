package main

import (
	"fmt"
	"os"

	"github.com/orderportal/unitreport/pkg/unitreport"
	"github.com/orderportal/unitreport/pkg/unitreport/output"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
		sheet      string
		marker     string
		entityKey  string
	)

	cmd := &cobra.Command{
		Use:   "extract <source|file.xlsx|dir>",
		Short: "Extract the records of a source or workbook as JSON",
		Long: `Extract records as JSON. The argument is either a source name from the
profile or the path of a workbook or a directory of volume workbooks.
For paths, --sheet, --marker and --entity-key describe the layout;
with --entity-key every record's unit is resolved through the lookup table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup, err := profile.Lookup()
			if err != nil {
				return err
			}

			target := args[0]
			opts := unitreport.DefaultOptions()
			isDir := false
			if _, ok := profile.Sources[target]; ok {
				if opts.Schema, err = profile.Schema(target); err != nil {
					return err
				}
				if target, isDir, err = profile.SourcePath(target); err != nil {
					return err
				}
				opts.Lookup = lookup
			} else {
				info, err := os.Stat(target)
				if err != nil {
					return unitreport.NewNotFoundError("source or file", target, "")
				}
				isDir = info.IsDir()
				opts.Schema = unitreport.Schema{
					Sheet:     sheet,
					Marker:    marker,
					EntityKey: entityKey,
					Renames:   profile.Renames,
				}
				if entityKey != "" {
					opts.Lookup = lookup
				}
			}

			data, err := extractJSON(target, isDir, opts, pretty)
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().StringVar(&marker, "marker", "", "Text in the first cell of the header row (default: first non-empty row)")
	cmd.Flags().StringVar(&entityKey, "entity-key", "", "Header of the unit name column")

	return cmd
}

// extractJSON extracts a workbook, or every workbook of a directory, and
// serializes the result.
func extractJSON(target string, isDir bool, opts unitreport.Options, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if isDir {
		batch, xerr := unitreport.ExtractDir(target, opts)
		if xerr != nil {
			return nil, xerr
		}
		data, err = output.BatchToJSON(batch, pretty)
	} else {
		table, xerr := unitreport.Extract(target, opts)
		if xerr != nil {
			return nil, xerr
		}
		data, err = output.TableToJSON(table, pretty)
	}
	if err != nil {
		return nil, fmt.Errorf("serialization failed: %w", err)
	}
	return data, nil
}
