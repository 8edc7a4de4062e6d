package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/khaledhikmat/pd-go/model"
	"github.com/khaledhikmat/pd-go/service/config"
)

type filesDBService struct {
	CfgSvc config.IService
}

func NewFilesDB(cfgsvc config.IService) IService {
	return &filesDBService{
		CfgSvc: cfgsvc,
	}
}

func (svc *filesDBService) RetrieveRunStats() ([]model.RunStats, error) {
	return retrieveEntities[model.RunStats]("run-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewError(err interface{}) error {
	// Determine if the error is custom
	var customErr model.CustomError
	if custom, ok := err.(model.CustomError); ok {
		customErr = custom
	} else {
		customErr.Processor = "N/A"
		customErr.Inner = err.(error)
		customErr.Message = err.(error).Error()
		customErr.StackTrace = "N/A"
		customErr.Misc = nil
	}

	// Create an error object to persist
	errorData := struct {
		Timestamp  int64                  `json:"timestamp"`
		Processor  string                 `json:"processor"`
		Inner      string                 `json:"innerError"`
		Message    string                 `json:"message"`
		StackTrace string                 `json:"stackTrace"`
		Misc       map[string]interface{} `json:"misc"`
	}{
		Timestamp:  time.Now().Unix(),
		Processor:  customErr.Processor,
		Inner:      customErr.Inner.Error(),
		Message:    customErr.Message,
		StackTrace: customErr.StackTrace,
		Misc:       customErr.Misc,
	}
	return newEntity(errorData, "errors", svc.CfgSvc)
}

func (svc *filesDBService) NewRunStats(stats model.RunStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "run-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewCatalogStats(stats model.CatalogStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "catalog-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewDetectorStats(stats model.DetectorStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "detector-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewRemoverStats(stats model.RemoverStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "remover-stats", svc.CfgSvc)
}

func newEntity[T any](entity T, filename string, cfgsvc config.IService) error {
	if err := os.MkdirAll(cfgsvc.GetReportsFolder(), 0755); err != nil {
		return err
	}

	entities, err := retrieveEntities[T](filename, cfgsvc)
	if err != nil {
		return err
	}

	entities = append(entities, entity)

	// Marshal the entity data to JSON
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}

	// Write the JSON data to the file (with truncation)
	output := fmt.Sprintf("%s/%s.json", cfgsvc.GetReportsFolder(), filename)
	return os.WriteFile(output, data, 0644)
}

func retrieveEntities[T any](filename string, cfgsvc config.IService) ([]T, error) {
	entities := []T{}

	data, err := os.ReadFile(fmt.Sprintf("%s/%s.json", cfgsvc.GetReportsFolder(), filename))
	if err != nil {
		// WARNING: file not found, return empty slice
		return entities, nil
	}

	err = json.Unmarshal(data, &entities)
	if err != nil {
		return nil, err
	}

	return entities, nil
}
