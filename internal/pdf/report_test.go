package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "task-tracker.com/task-tracker/internal/data_models"
)

func TestRenderUserReport(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	out, err := NewReportGenerator().RenderUserReport(UserReportData{
		UserID:      "u1",
		UserName:    "Zoë Example",
		From:        &from,
		To:          &to,
		GeneratedAt: to,
		Report: dto.UserReportResponse{
			TaskMetrics: dto.TaskMetrics{TotalTasks: 3, CompletedTasks: 2},
		},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestPeriodOf(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "All time", periodOf(&from, nil))
	assert.Equal(t, "2024-01-01 to 2024-01-01", periodOf(&from, &from))
}
