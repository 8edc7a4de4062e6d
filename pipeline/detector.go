package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"gocv.io/x/gocv"

	"github.com/khaledhikmat/pd-go/model"
	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/imaging"
	"github.com/khaledhikmat/pd-go/service/lgr"
)

// Rolling log of per-frame decisions
var decisionLogger = &lumberjack.Logger{
	Filename:   "decisions.log",
	MaxSize:    10, // MB
	MaxBackups: 5,
	MaxAge:     7,    // days
	Compress:   true, // compress old logs
}

// Detect walks every camera's frame sequence in catalog order and
// returns the names of the unwanted images: frames that failed to
// decode plus frames whose change score against the current
// representative fell below the threshold. Cameras are independent; the
// representative chain never crosses camera keys.
func Detect(canxCtx context.Context, cfgSvc config.IService, imgSvc imaging.IService, folder string, catalog Catalog) ([]string, []model.DetectorStats) {
	unwanted := []string{}
	allStats := []model.DetectorStats{}

	threshold := cfgSvc.GetScoreThreshold()

	for _, camera := range catalog.Cameras {
		names, stats := detectCamera(canxCtx, imgSvc, threshold, folder, camera, catalog.Frames[camera])
		unwanted = append(unwanted, names...)
		allStats = append(allStats, stats)

		if canxCtx.Err() != nil {
			break
		}
	}

	lgr.Logger.Info(
		"change detection done",
		slog.Int("unwanted", len(unwanted)),
	)

	return unwanted, allStats
}

// detectCamera folds one camera's sequence over a single piece of state:
// the current representative image. The first decodable frame is always
// retained.
func detectCamera(canxCtx context.Context, imgSvc imaging.IService, threshold float64, folder, camera string, frames []string) ([]string, model.DetectorStats) {
	unwanted := []string{}

	beginTime := time.Now().Unix()
	stats := model.DetectorStats{
		Camera: camera,
	}
	var totalScoreTime time.Duration

	var representative gocv.Mat
	hasRepresentative := false
	defer func() {
		if hasRepresentative {
			representative.Close()
		}
	}()

	for _, name := range frames {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"detector context cancelled",
				slog.String("camera", camera),
			)
			stats.Uptime = time.Now().Unix() - beginTime
			return unwanted, stats
		default:
		}

		stats.Frames++

		candidate, err := imgSvc.Decode(filepath.Join(folder, name))
		if err != nil {
			// Unreadable frames are always unwanted, representative or not
			stats.Unreadable++
			unwanted = append(unwanted, name)
			logDecision(Decision{Camera: camera, Name: name, Action: ActionUnreadable})
			continue
		}

		if !hasRepresentative {
			representative = candidate
			hasRepresentative = true
			stats.Kept++
			logDecision(Decision{Camera: camera, Name: name, Action: ActionKept})
			continue
		}

		if candidate.Rows() != representative.Rows() || candidate.Cols() != representative.Cols() {
			// Resize target is (width, height): X is columns, Y is rows
			resized := imgSvc.Resize(candidate, representative.Cols(), representative.Rows())
			candidate.Close()
			candidate = resized
			stats.Resized++
		}

		startScore := time.Now()
		repGray := imgSvc.Preprocess(representative)
		candGray := imgSvc.Preprocess(candidate)
		result, err := imgSvc.ScoreChange(repGray, candGray)
		repGray.Close()
		candGray.Close()
		totalScoreTime += time.Since(startScore)

		if err != nil {
			// Scoring is not expected to fail after shape reconciliation.
			// Never delete on uncertainty: retain the candidate as the new
			// representative.
			lgr.Logger.Warn(
				"error scoring frames",
				slog.String("camera", camera),
				slog.String("name", name),
				slog.Any("error", err),
			)
			representative.Close()
			representative = candidate
			stats.Kept++
			continue
		}

		if result.Score < threshold {
			// Near-duplicate: the representative stays in place
			stats.Redundant++
			unwanted = append(unwanted, name)
			candidate.Close()
			logDecision(Decision{Camera: camera, Name: name, Action: ActionRedundant, Score: result.Score})
			continue
		}

		// Genuine change: the candidate becomes the representative
		representative.Close()
		representative = candidate
		stats.Kept++
		logDecision(Decision{Camera: camera, Name: name, Action: ActionKept, Score: result.Score})
	}

	stats.Uptime = time.Now().Unix() - beginTime
	if stats.Frames > 0 {
		stats.AvgScoreTime = totalScoreTime.Seconds() / float64(stats.Frames)
	}

	return unwanted, stats
}

func logDecision(decision Decision) {
	entry := map[string]interface{}{
		"time":     time.Now().Format(time.RFC3339),
		"decision": decision,
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Println("Error marshaling decision:", err)
		return
	}

	if _, err := decisionLogger.Write(append(jsonData, '\n')); err != nil {
		fmt.Println("Error writing to decision log file:", err)
	}
}
