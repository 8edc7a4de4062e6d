package storage

import (
	"os"
	"path/filepath"

	"github.com/khaledhikmat/pd-go/service/config"
)

type folderService struct {
	CfgSvc config.IService
}

// NewFolder stores files by moving them into the configured archive
// folder. Used by the remover when the removal mode is `archive`.
func NewFolder(cfgsvc config.IService) IService {
	return &folderService{
		CfgSvc: cfgsvc,
	}
}

func (svc *folderService) StoreFile(fileName string) (string, error) {
	archiveFolder := svc.CfgSvc.GetArchiveFolder()
	if err := os.MkdirAll(archiveFolder, 0755); err != nil {
		return "", err
	}

	dest := filepath.Join(archiveFolder, filepath.Base(fileName))
	if err := os.Rename(fileName, dest); err != nil {
		return "", err
	}

	return dest, nil
}
