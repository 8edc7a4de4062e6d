package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/storage"
)

func TestRemoveToleratesMissingFiles(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "c10-1.png")
	touch(t, folder, "c10-2.png")

	cfg := config.NewEnvVars()
	stats := Remove(context.Background(), cfg, storage.NewFolder(cfg), folder,
		[]string{"c10-1.png", "ghost.png", "c10-2.png"})

	assert.Equal(t, 3, stats.Requested)
	assert.Equal(t, 2, stats.Removed)
	assert.Equal(t, 1, stats.Failed)
	assert.NoFileExists(t, filepath.Join(folder, "c10-1.png"))
	assert.NoFileExists(t, filepath.Join(folder, "c10-2.png"))
}

func TestRemoveArchiveMode(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "c10-1.png")

	archiveFolder := filepath.Join(t.TempDir(), "archive")
	t.Setenv("PDGO_REMOVAL_MODE", "archive")
	t.Setenv("PDGO_ARCHIVE_FOLDER", archiveFolder)

	cfg := config.NewEnvVars()
	stats := Remove(context.Background(), cfg, storage.NewFolder(cfg), folder, []string{"c10-1.png"})

	assert.Equal(t, 1, stats.Archived)
	assert.Equal(t, 0, stats.Removed)
	assert.NoFileExists(t, filepath.Join(folder, "c10-1.png"))
	assert.FileExists(t, filepath.Join(archiveFolder, "c10-1.png"))
}

func TestRemoveEmptyList(t *testing.T) {
	cfg := config.NewEnvVars()
	stats := Remove(context.Background(), cfg, storage.NewFolder(cfg), t.TempDir(), nil)

	assert.Equal(t, 0, stats.Requested)
	assert.Equal(t, 0, stats.Removed)
}

func TestRemoveCancelledContext(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "c10-1.png")

	canxCtx, canxFn := context.WithCancel(context.Background())
	canxFn()

	cfg := config.NewEnvVars()
	stats := Remove(canxCtx, cfg, storage.NewFolder(cfg), folder, []string{"c10-1.png"})

	assert.Equal(t, 0, stats.Removed)
	require.FileExists(t, filepath.Join(folder, "c10-1.png"))
}
