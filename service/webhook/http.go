package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/xerrors"

	"github.com/khaledhikmat/pd-go/service/config"
)

type httpService struct {
	CfgSvc config.IService
	Client *http.Client
}

func NewHTTP(cfgsvc config.IService) IService {
	return &httpService{
		CfgSvc: cfgsvc,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (svc *httpService) Post(payload map[string]interface{}) error {
	url := svc.CfgSvc.GetWebhookURL()
	if url == "" {
		// No webhook configured
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := svc.Client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return xerrors.Errorf("webhook responded with status: %s", resp.Status)
	}

	return nil
}
