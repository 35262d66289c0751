package exports

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// MockDriver implements StorageDriver for testing
type MockDriver struct {
	SavedKey         string
	SavedBody        []byte
	SavedContentType string
	GenerateURLErr   error
	DeleteCalled     bool
	DeleteKey        string
}

func (m *MockDriver) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	m.SavedKey = key
	m.SavedContentType = contentType
	content, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.SavedBody = content
	return nil
}

func (m *MockDriver) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return io.NopCloser(bytes.NewReader(m.SavedBody)), m.SavedContentType, nil
}

func (m *MockDriver) Delete(ctx context.Context, key string) error {
	m.DeleteCalled = true
	m.DeleteKey = key
	return nil
}

func (m *MockDriver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if m.GenerateURLErr != nil {
		return "", m.GenerateURLErr
	}
	return "/test/" + key, nil
}

func sampleList() model.List {
	return model.List{
		{ID: "ABC-100", Description: "Widget", Quantity: 3, ScannedCount: 3, Completed: true, Weight: 1},
		{ID: "XYZ-200", Description: "Gadget", Quantity: 2, ScannedCount: 1, Weight: 2},
	}
}

func TestExportService_Generate(t *testing.T) {
	mock := &MockDriver{}
	service := NewExportService(mock)

	ctx := context.Background()
	record, err := service.Generate(ctx, model.WorkflowPicking, FormatCSV, sampleList())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if record.Workflow != model.WorkflowPicking {
		t.Errorf("expected workflow PICKING, got %s", record.Workflow)
	}
	if record.ItemCount != 2 {
		t.Errorf("expected 2 items, got %d", record.ItemCount)
	}
	if !strings.HasSuffix(record.Key, ".csv") {
		t.Errorf("expected a .csv key, got %s", record.Key)
	}
	if record.URL != "/test/"+mock.SavedKey {
		t.Errorf("unexpected URL: %s", record.URL)
	}
	if mock.SavedContentType != "text/csv" {
		t.Errorf("expected content type text/csv, got %s", mock.SavedContentType)
	}
	if record.Size != int64(len(mock.SavedBody)) {
		t.Errorf("size %d does not match saved body %d", record.Size, len(mock.SavedBody))
	}
	if !bytes.Contains(mock.SavedBody, []byte("ABC-100")) {
		t.Error("saved body does not contain the exported items")
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	service := NewExportService(&MockDriver{})

	_, err := service.Generate(context.Background(), model.WorkflowPicking, Format("pdf"), sampleList())
	if err == nil {
		t.Fatal("expected Generate to fail for unsupported format")
	}
}

func TestExportService_GenerateURLFailure(t *testing.T) {
	mock := &MockDriver{
		GenerateURLErr: io.ErrUnexpectedEOF, // Just an example error
	}
	service := NewExportService(mock)

	_, err := service.Generate(context.Background(), model.WorkflowPicking, FormatJSON, sampleList())
	if err == nil {
		t.Fatal("expected Generate to fail when GenerateURL fails")
	}

	if !mock.DeleteCalled {
		t.Error("expected Delete to be called to cleanup orphaned artifact")
	}
	if mock.DeleteKey != mock.SavedKey {
		t.Errorf("expected Delete to be called with key %s, got %s", mock.SavedKey, mock.DeleteKey)
	}
}

func TestExportService_Download(t *testing.T) {
	mock := &MockDriver{
		SavedBody:        []byte("test content"),
		SavedContentType: "text/plain",
	}
	service := NewExportService(mock)

	reader, contentType, err := service.Download(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer reader.Close()

	if contentType != "text/plain" {
		t.Errorf("expected content type text/plain, got %s", contentType)
	}

	content, _ := io.ReadAll(reader)
	if !bytes.Equal(content, mock.SavedBody) {
		t.Error("downloaded content does not match saved body")
	}
}
