package unitreport

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
)

// VolumeFiles lists the xlsx and xlsm workbooks in dir, sorted by name.
// Office lock files ("~$...") are skipped.
func VolumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError("directory", dir, "")
		}
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xlsm":
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

// ExtractDir reads the same sheet from every workbook in dir and
// concatenates the records in file name order. Workbooks are opened one at
// a time; the first failing workbook aborts the whole batch.
func ExtractDir(dir string, opts Options) (*models.Batch, error) {
	paths, err := VolumeFiles(dir)
	if err != nil {
		return nil, err
	}

	log := opts.logger()
	batch := &models.Batch{}
	for _, path := range paths {
		table, err := Extract(path, opts)
		if err != nil {
			return nil, err
		}
		log.Info("read workbook", "file", table.BookName, "sheet", table.Sheet, "records", len(table.Records))
		batch.Files = append(batch.Files, models.FileSummary{
			BookName: table.BookName,
			Sheet:    table.Sheet,
			Count:    len(table.Records),
		})
		batch.Records = append(batch.Records, table.Records...)
	}
	log.Debug("read volume directory", "dir", dir, "files", len(batch.Files), "records", len(batch.Records))
	return batch, nil
}
