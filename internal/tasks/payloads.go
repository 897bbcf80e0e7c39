package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants shared by producers and the worker.
const (
	TypePortfolioExport = "portfolio:export"
	TypeTemplatePreview = "template:preview"
)

// PortfolioExportPayload identifies the portfolio to package into a zip.
type PortfolioExportPayload struct {
	PortfolioID   uint   `json:"portfolio_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPortfolioExportTask builds a portfolio export job.
func NewPortfolioExportTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PortfolioExportPayload{
		PortfolioID:   id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePortfolioExport, payload), nil
}

// TemplatePreviewPayload identifies the installed template to screenshot.
type TemplatePreviewPayload struct {
	TemplateID    uint   `json:"template_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewTemplatePreviewTask builds a template preview rendering job.
func NewTemplatePreviewTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(TemplatePreviewPayload{
		TemplateID:    id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTemplatePreview, payload), nil
}
