package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/khaledhikmat/pd-go/service/config"
	"github.com/khaledhikmat/pd-go/service/lgr"
)

// Load enumerates the dataset folder (non-recursive) and groups the file
// names by camera key i.e. the fixed-length name prefix. The OS marker
// file and subdirectories are skipped. An unreadable folder is the only
// error surfaced to the caller.
func Load(cfgSvc config.IService, folder string) (Catalog, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return Catalog{}, fmt.Errorf("error reading dataset folder: %w", err)
	}

	catalog := Catalog{
		Frames: map[string][]string{},
	}

	prefixLength := cfgSvc.GetCameraPrefixLength()
	marker := cfgSvc.GetMarkerFileName()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if name == marker {
			continue
		}

		// Names shorter than the prefix length form their own group
		key := name
		if len(name) > prefixLength {
			key = name[:prefixLength]
		}

		if _, ok := catalog.Frames[key]; !ok {
			catalog.Cameras = append(catalog.Cameras, key)
		}
		catalog.Frames[key] = append(catalog.Frames[key], name)
	}

	lgr.Logger.Info(
		"catalog loaded",
		slog.String("folder", folder),
		slog.Int("cameras", len(catalog.Cameras)),
	)
	for _, camera := range catalog.Cameras {
		lgr.Logger.Info(
			"camera frames",
			slog.String("camera", camera),
			slog.Int("frames", len(catalog.Frames[camera])),
		)
	}

	return catalog, nil
}
