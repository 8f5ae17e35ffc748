package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Content types served by the job report downloads.
const (
	ContentTypeCSV = "text/csv"
	ContentTypePDF = "application/pdf"
)

// Dataset is the tabular content of a job report. Row values are keyed
// by header so a row may omit columns.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// AttachmentName builds a dated download filename, e.g. "jobs-2026-08-29.csv".
func AttachmentName(prefix string, t time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, t.UTC().Format("2006-01-02"), ext)
}

// ContentDisposition formats the attachment header value for a download.
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

// CSVExporter renders a Dataset into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the dataset, header row first. Missing cells render as
// empty fields so every record has the same width.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(data.Headers))
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
