package main

import (
	"fmt"
	"log/slog"

	"github.com/orderportal/unitreport/internal/config"
	"github.com/orderportal/unitreport/pkg/unitreport"
	"github.com/orderportal/unitreport/pkg/unitreport/models"
)

// readSource extracts all records of a configured source, resolving each
// record's unit through the lookup table.
func readSource(p *config.Profile, lookup *unitreport.Lookup, name string) ([]models.Record, error) {
	schema, err := p.Schema(name)
	if err != nil {
		return nil, err
	}
	path, isDir, err := p.SourcePath(name)
	if err != nil {
		return nil, err
	}
	opts := unitreport.Options{
		Schema: schema,
		Lookup: lookup,
		Logger: slog.Default().With("source", name),
	}

	if isDir {
		batch, err := unitreport.ExtractDir(path, opts)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", name, err)
		}
		return batch.Records, nil
	}
	table, err := unitreport.Extract(path, opts)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", name, err)
	}
	opts.Logger.Info("read workbook", "file", table.BookName, "records", len(table.Records))
	return table.Records, nil
}

// readSources concatenates the records of several sources.
func readSources(p *config.Profile, lookup *unitreport.Lookup, names []string) ([]models.Record, error) {
	var records []models.Record
	for _, name := range names {
		recs, err := readSource(p, lookup, name)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}
