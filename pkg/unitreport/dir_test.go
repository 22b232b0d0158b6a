package unitreport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVolumeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	header := []interface{}{"1. Name of reporting unit* (choose from drop-down menu)", "First name", "Last name", "Email"}

	writeWorkbook(t, filepath.Join(dir, "b_unit.xlsx"), usersSheet, [][]interface{}{
		{"Users"},
		header,
		{"Genomics Unit", "Per", "Ek", "per.ek@ki.se"},
		{"Genomics Unit", "Eva", "Ek", "eva.ek@ki.se"},
	})
	writeWorkbook(t, filepath.Join(dir, "A_unit.XLSX"), usersSheet, [][]interface{}{
		header,
		{"In Situ Sequencing", "Åsa", "Öberg", "asa.oberg@uu.se"},
	})
	writeWorkbook(t, filepath.Join(dir, "~$b_unit.xlsx"), usersSheet, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.xlsx"), 0755))
	return dir
}

func TestVolumeFiles(t *testing.T) {
	dir := writeVolumeDir(t)

	paths, err := VolumeFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "A_unit.XLSX", filepath.Base(paths[0]))
	assert.Equal(t, "b_unit.xlsx", filepath.Base(paths[1]))
}

func TestVolumeFilesMissingDir(t *testing.T) {
	_, err := VolumeFiles(filepath.Join(t.TempDir(), "missing"))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "directory", nf.What)
}

func TestExtractDir(t *testing.T) {
	dir := writeVolumeDir(t)

	batch, err := ExtractDir(dir, Options{Schema: usersSchema(), Lookup: testLookup(t)})
	require.NoError(t, err)

	require.Len(t, batch.Files, 2)
	assert.Equal(t, "A_unit.XLSX", batch.Files[0].BookName)
	assert.Equal(t, 1, batch.Files[0].Count)
	assert.Equal(t, "b_unit.xlsx", batch.Files[1].BookName)
	assert.Equal(t, 2, batch.Files[1].Count)

	require.Len(t, batch.Records, 3)
	assert.Equal(t, "In Situ Sequencing", batch.Records[0].Get(unitKey))
	assert.Equal(t, "A_unit.XLSX", batch.Records[0].Source)
	assert.Equal(t, "eva.ek@ki.se", batch.Records[2].Get("Email"))
}

func TestExtractDirFailsOnFirstError(t *testing.T) {
	dir := writeVolumeDir(t)
	writeWorkbook(t, filepath.Join(dir, "c_unit.xlsx"), "Other", [][]interface{}{{"x"}})
	writeWorkbook(t, filepath.Join(dir, "d_unit.xlsx"), "Other", [][]interface{}{{"x"}})

	_, err := ExtractDir(dir, Options{Schema: usersSchema()})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "sheet", nf.What)
	assert.Equal(t, "c_unit.xlsx", nf.File)
}
