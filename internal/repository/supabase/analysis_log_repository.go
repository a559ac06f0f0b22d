package supabase

import (
	"context"
	"net/http"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/util"
)

const analysisLogsTable = "cando_analysis_logs"

// AnalysisLogRepository appends classification audit entries. Entries are
// append-only; nothing in the service reads them back.
type AnalysisLogRepository struct {
	client *Client
}

func NewAnalysisLogRepository(client *Client) *AnalysisLogRepository {
	return &AnalysisLogRepository{client: client}
}

// Append stores one audit entry.
func (r *AnalysisLogRepository) Append(ctx context.Context, entry *domain.AnalysisLog) error {
	row := analysisLogRow{
		ID:               entry.ID,
		SessionID:        entry.SessionID,
		UserID:           entry.UserID,
		TranscriptLength: entry.TranscriptLength,
		DetectedCanDoIDs: entry.DetectedCanDoIDs,
		Model:            entry.Model,
		PromptVersion:    entry.PromptVersion,
		ProcessingMs:     entry.ProcessingMs,
		HasError:         entry.HasError,
		ErrorMessage:     entry.ErrorMessage,
	}
	if row.ID == "" {
		row.ID = util.NewULID()
	}
	if row.DetectedCanDoIDs == nil {
		row.DetectedCanDoIDs = []string{}
	}

	return r.client.do(ctx, request{
		method: http.MethodPost,
		path:   restPath + analysisLogsTable,
		body:   []analysisLogRow{row},
	}, nil)
}

var _ domain.AnalysisLogRepository = (*AnalysisLogRepository)(nil)
