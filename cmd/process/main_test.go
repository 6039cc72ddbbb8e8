package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ninjapark/rollsync/internal/export"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookSavesAndPublishes(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "out.xlsx")
	publishPath := filepath.Join(dir, "shared", "schedule.xlsx")

	records := []model.StudentRecord{{Name: "Amy Fox", SkillLevel: "s1", ClassName: "Not Found"}}
	require.NoError(t, writeWorkbook(records, nil, xlsxPath, publishPath))

	for _, p := range []string{xlsxPath, publishPath} {
		f, err := excelize.OpenFile(p)
		require.NoError(t, err, p)
		v, err := f.GetCellValue(export.StudentsSheet, "A2")
		require.NoError(t, err)
		assert.Equal(t, "Amy Fox", v)
		require.NoError(t, f.Close())
	}
}

func TestWriteWorkbookPublishFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	publishPath := filepath.Join(dir, "schedule.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Join(publishPath, "occupied"), 0o755))

	err := writeWorkbook(nil, nil, "", publishPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrPublishFailed)
	assert.Contains(t, err.Error(), "previous dashboard was left unchanged")

	_, statErr := os.Stat(filepath.Join(publishPath, "occupied"))
	assert.NoError(t, statErr)
}
