package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderFillsMissingCells(t *testing.T) {
	data := Dataset{
		Headers: []string{"Reference", "Client", "Status"},
		Rows: []map[string]string{
			{"Reference": "JOB-1", "Client": "Acme Ltd", "Status": "COMPLETED"},
			{"Reference": "JOB-2", "Status": "CANCELLED"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Reference,Client,Status\nJOB-1,Acme Ltd,COMPLETED\nJOB-2,,CANCELLED\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestAttachmentNaming(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	name := AttachmentName("jobs", at, "csv")
	assert.Equal(t, "jobs-2026-08-29.csv", name)
	assert.Equal(t, `attachment; filename="jobs-2026-08-29.csv"`, ContentDisposition(name))
}
