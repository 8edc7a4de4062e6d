package data

import "github.com/khaledhikmat/pd-go/model"

type IService interface {
	RetrieveRunStats() ([]model.RunStats, error)

	NewError(err interface{}) error
	NewRunStats(stats model.RunStats) error
	NewCatalogStats(stats model.CatalogStats) error
	NewDetectorStats(stats model.DetectorStats) error
	NewRemoverStats(stats model.RemoverStats) error
}
