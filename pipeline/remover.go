package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/khaledhikmat/pd-go/model"
	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/lgr"
	"github.com/khaledhikmat/pd-go/service/storage"
)

// Remove deletes every unwanted image from the dataset folder, or moves
// it to the archive folder when the removal mode is `archive`. Failures
// of any kind are skipped so the remaining names still get processed;
// only successful removals are counted.
func Remove(canxCtx context.Context, cfgSvc config.IService, storageSvc storage.IService, folder string, unwanted []string) model.RemoverStats {
	beginTime := time.Now().Unix()
	stats := model.RemoverStats{
		Requested: len(unwanted),
	}

	archive := cfgSvc.GetRemovalMode() == config.RemovalModeArchive

	for _, name := range unwanted {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"remover context cancelled",
			)
			stats.Uptime = time.Now().Unix() - beginTime
			return stats
		default:
		}

		path := filepath.Join(folder, name)

		if archive {
			if _, err := storageSvc.StoreFile(path); err != nil {
				stats.Failed++
				lgr.Logger.Debug(
					"error archiving image",
					slog.String("name", name),
					slog.Any("error", err),
				)
				continue
			}
			stats.Archived++
			continue
		}

		if err := os.Remove(path); err != nil {
			stats.Failed++
			lgr.Logger.Debug(
				"error removing image",
				slog.String("name", name),
				slog.Any("error", err),
			)
			continue
		}
		stats.Removed++
	}

	stats.Uptime = time.Now().Unix() - beginTime

	lgr.Logger.Info(
		"removal done",
		slog.Int("requested", stats.Requested),
		slog.Int("removed", stats.Removed),
		slog.Int("archived", stats.Archived),
		slog.Int("failed", stats.Failed),
	)

	return stats
}
