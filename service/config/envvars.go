package config

import (
	"os"
	"strconv"
	"strings"
)

type envVarsService struct {
}

// NewEnvVars expects env vars to be loaded already i.e. main loads the
// .env file via godotenv when running in dev.
func NewEnvVars() IService {
	return &envVarsService{}
}

func (svc *envVarsService) GetDatasetFolder() string {
	return os.Getenv("PDGO_DATASET_FOLDER")
}

func (svc *envVarsService) GetCameraPrefixLength() int {
	return envInt("PDGO_CAMERA_PREFIX_LENGTH", 3)
}

func (svc *envVarsService) GetMarkerFileName() string {
	return envString("PDGO_MARKER_FILE_NAME", ".DS_Store")
}

func (svc *envVarsService) GetGaussianBlurRadii() []int {
	// Successive Gaussian blur kernel sizes. Must be odd and positive.
	return envInts("PDGO_BLUR_RADII", []int{5, 7})
}

func (svc *envVarsService) GetScoreThreshold() float64 {
	return envFloat("PDGO_SCORE_THRESHOLD", 750)
}

func (svc *envVarsService) GetMinContourArea() float64 {
	return envFloat("PDGO_MIN_CONTOUR_AREA", 50)
}

func (svc *envVarsService) GetBlackMaskPercentages() []int {
	// Left, up, right and down border percentages masked out before scoring.
	return envInts("PDGO_BLACK_MASK", []int{5, 10, 5, 0})
}

func (svc *envVarsService) GetRemovalMode() string {
	return envString("PDGO_REMOVAL_MODE", RemovalModeDelete)
}

func (svc *envVarsService) GetArchiveFolder() string {
	return envString("PDGO_ARCHIVE_FOLDER", "./archive")
}

func (svc *envVarsService) GetReportsFolder() string {
	return envString("PDGO_REPORTS_FOLDER", "./reports")
}

func (svc *envVarsService) GetWebhookURL() string {
	return os.Getenv("PDGO_WEBHOOK_URL")
}

func (svc *envVarsService) GetModeMaxShutdownTime() int {
	return envInt("PDGO_MODE_MAX_SHUTDOWN_TIME", 5)
}

func envString(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func envInts(key string, def []int) []int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	values := []int{}
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return def
		}
		values = append(values, v)
	}

	return values
}
