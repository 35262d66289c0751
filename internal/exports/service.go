package exports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wareline/wareline/internal/listio"
	"github.com/wareline/wareline/internal/warehouse/model"
)

// Format selects the rendering of an export artifact.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

func (f Format) contentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// ExportRecord represents the metadata of a generated export artifact
type ExportRecord struct {
	ID        uuid.UUID      `json:"id"`
	Workflow  model.Workflow `json:"workflow"`
	Format    Format         `json:"format"`
	Key       string         `json:"key"`
	URL       string         `json:"url"`
	Size      int64          `json:"size"`
	ItemCount int            `json:"itemCount"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ExportService renders workflow lists into artifacts and stores them
type ExportService struct {
	Driver StorageDriver
}

func NewExportService(driver StorageDriver) *ExportService {
	return &ExportService{Driver: driver}
}

// Generate renders the list in the requested format, saves the artifact via
// the driver, and returns its metadata.
func (s *ExportService) Generate(ctx context.Context, workflow model.Workflow, format Format, list model.List) (*ExportRecord, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		err = listio.WriteJSON(&buf, workflow, list)
	case FormatCSV:
		err = listio.WriteCSV(&buf, list)
	case FormatText:
		err = listio.WriteText(&buf, workflow, list)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("%s.%s", id.String(), format)
	size := int64(buf.Len())

	if err := s.Driver.Save(ctx, key, &buf, format.contentType()); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.Driver.GenerateURL(ctx, key, 0)
	if err != nil {
		if delErr := s.Driver.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned artifact", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	record := &ExportRecord{
		ID:        id,
		Workflow:  workflow,
		Format:    format,
		Key:       key,
		URL:       url,
		Size:      size,
		ItemCount: len(list),
		CreatedAt: time.Now().UTC(),
	}

	slog.InfoContext(ctx, "Export artifact generated", "id", id, "key", key, "items", len(list))
	return record, nil
}

// Download retrieves the artifact content and its MIME type
func (s *ExportService) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.Driver.Get(ctx, key)
}
