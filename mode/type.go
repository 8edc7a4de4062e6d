package mode

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/pd-go/model"
	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/data"
	"github.com/khaledhikmat/pd-go/service/imaging"
	"github.com/khaledhikmat/pd-go/service/lgr"
	"github.com/khaledhikmat/pd-go/service/storage"
	"github.com/khaledhikmat/pd-go/service/webhook"
)

type Processor func(canxCtx context.Context,
	cfgSvc config.IService,
	dataSvc data.IService,
	imgSvc imaging.IService,
	storageSvc storage.IService,
	webhookSvc webhook.IService) error

func procStats(datasvc data.IService, stats interface{}) {
	switch stats := stats.(type) {
	case model.RunStats:
		procRunStats(datasvc, stats)
	case model.CatalogStats:
		procCatalogStats(datasvc, stats)
	case model.DetectorStats:
		procDetectorStats(datasvc, stats)
	case model.RemoverStats:
		procRemoverStats(datasvc, stats)
	default:
		lgr.Logger.Error(
			"unknown stats type",
			slog.Any("stats", stats),
		)
	}
}

func procRunStats(datasvc data.IService, stats model.RunStats) {
	err := datasvc.NewRunStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store run stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procCatalogStats(datasvc data.IService, stats model.CatalogStats) {
	err := datasvc.NewCatalogStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store catalog stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procDetectorStats(datasvc data.IService, stats model.DetectorStats) {
	err := datasvc.NewDetectorStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store detector stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procRemoverStats(datasvc data.IService, stats model.RemoverStats) {
	err := datasvc.NewRemoverStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store remover stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procError(datasvc data.IService, err interface{}) {
	errTemp := datasvc.NewError(err)
	if errTemp != nil {
		lgr.Logger.Error(
			"failed to store error",
			slog.Any("error", errTemp),
		)
	}
}

func catalogStats(folder string, cameras []string, frames map[string][]string) model.CatalogStats {
	stats := model.CatalogStats{
		Folder:    folder,
		Cameras:   len(cameras),
		PerCamera: map[string]int{},
	}

	for _, camera := range cameras {
		stats.PerCamera[camera] = len(frames[camera])
		stats.Frames += len(frames[camera])
	}

	return stats
}
