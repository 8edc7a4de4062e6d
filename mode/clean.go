package mode

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/pd-go/model"
	"github.com/khaledhikmat/pd-go/pipeline"
	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/data"
	"github.com/khaledhikmat/pd-go/service/imaging"
	"github.com/khaledhikmat/pd-go/service/lgr"
	"github.com/khaledhikmat/pd-go/service/storage"
	"github.com/khaledhikmat/pd-go/service/webhook"
)

// The clean mode runs the full pipeline: load the catalog, detect
// redundant frames and remove (or archive) them.
func Clean(canxCtx context.Context,
	cfgSvc config.IService,
	dataSvc data.IService,
	imgSvc imaging.IService,
	storageSvc storage.IService,
	webhookSvc webhook.IService) error {
	folder := cfgSvc.GetDatasetFolder()
	if folder == "" {
		return xerrors.New("dataset folder is not configured")
	}

	runID := uuid.NewString()
	startTime := time.Now().Unix()

	lgr.Logger.Info(
		"clean run starting...",
		slog.String("runID", runID),
		slog.String("folder", folder),
	)

	catalog, err := pipeline.Load(cfgSvc, folder)
	if err != nil {
		// An unreadable dataset folder is the only fatal condition
		return err
	}

	catStats := catalogStats(folder, catalog.Cameras, catalog.Frames)
	procStats(dataSvc, catStats)

	unwanted, detectorStats := pipeline.Detect(canxCtx, cfgSvc, imgSvc, folder, catalog)
	for _, stats := range detectorStats {
		procStats(dataSvc, stats)
	}

	removerStats := pipeline.Remove(canxCtx, cfgSvc, storageSvc, folder, unwanted)
	procStats(dataSvc, removerStats)

	runStats := model.RunStats{
		RunID:    runID,
		Mode:     "clean",
		Folder:   folder,
		Cameras:  catStats.Cameras,
		Frames:   catStats.Frames,
		Unwanted: len(unwanted),
		Removed:  removerStats.Removed + removerStats.Archived,
		Uptime:   time.Now().Unix() - startTime,
	}
	procStats(dataSvc, runStats)

	// Let the outside world know how the run went
	err = webhookSvc.Post(map[string]interface{}{
		"runId":     runStats.RunID,
		"mode":      runStats.Mode,
		"folder":    runStats.Folder,
		"cameras":   runStats.Cameras,
		"frames":    runStats.Frames,
		"unwanted":  runStats.Unwanted,
		"removed":   runStats.Removed,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		procError(dataSvc, model.GenError("mode_clean",
			err,
			map[string]interface{}{"runID": runID},
			"error posting run summary to webhook"))
	}

	lgr.Logger.Info(
		"clean run done",
		slog.String("runID", runID),
		slog.Int("cameras", runStats.Cameras),
		slog.Int("frames", runStats.Frames),
		slog.Int("unwanted", runStats.Unwanted),
		slog.Int("removed", runStats.Removed),
	)

	return nil
}
