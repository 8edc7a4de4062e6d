package config

const (
	RemovalModeDelete  = "delete"
	RemovalModeArchive = "archive"
)

type IService interface {
	GetDatasetFolder() string
	GetCameraPrefixLength() int
	GetMarkerFileName() string
	GetGaussianBlurRadii() []int
	GetScoreThreshold() float64
	GetMinContourArea() float64
	GetBlackMaskPercentages() []int
	GetRemovalMode() string
	GetArchiveFolder() string
	GetReportsFolder() string
	GetWebhookURL() string
	GetModeMaxShutdownTime() int
}
