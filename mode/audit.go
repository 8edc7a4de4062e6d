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

// The audit mode is a dry run: it loads the catalog and detects
// redundant frames but touches nothing on disk.
func Audit(canxCtx context.Context,
	cfgSvc config.IService,
	dataSvc data.IService,
	imgSvc imaging.IService,
	_ storage.IService,
	_ webhook.IService) error {
	folder := cfgSvc.GetDatasetFolder()
	if folder == "" {
		return xerrors.New("dataset folder is not configured")
	}

	runID := uuid.NewString()
	startTime := time.Now().Unix()

	previousRuns, err := dataSvc.RetrieveRunStats()
	if err != nil {
		procError(dataSvc, model.GenError("mode_audit",
			err,
			map[string]interface{}{"runID": runID},
			"error retrieving previous run stats"))
	}

	lgr.Logger.Info(
		"audit run starting...",
		slog.String("runID", runID),
		slog.String("folder", folder),
		slog.Int("previousRuns", len(previousRuns)),
	)

	catalog, err := pipeline.Load(cfgSvc, folder)
	if err != nil {
		return err
	}

	catStats := catalogStats(folder, catalog.Cameras, catalog.Frames)
	procStats(dataSvc, catStats)

	unwanted, detectorStats := pipeline.Detect(canxCtx, cfgSvc, imgSvc, folder, catalog)
	for _, stats := range detectorStats {
		procStats(dataSvc, stats)
	}

	for _, name := range unwanted {
		lgr.Logger.Info(
			"would remove",
			slog.String("name", name),
		)
	}

	procStats(dataSvc, model.RunStats{
		RunID:    runID,
		Mode:     "audit",
		Folder:   folder,
		Cameras:  catStats.Cameras,
		Frames:   catStats.Frames,
		Unwanted: len(unwanted),
		Removed:  0,
		Uptime:   time.Now().Unix() - startTime,
	})

	lgr.Logger.Info(
		"audit run done",
		slog.String("runID", runID),
		slog.Int("cameras", catStats.Cameras),
		slog.Int("frames", catStats.Frames),
		slog.Int("unwanted", len(unwanted)),
	)

	return nil
}
