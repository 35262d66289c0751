package listio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wareline/wareline/internal/scan"
	"github.com/wareline/wareline/internal/warehouse/model"
)

// ExportDocument is the JSON export envelope: the items with their progress
// plus a summary block, mirroring what the paper-side of the workflow wants
// to see at a glance.
type ExportDocument struct {
	ExportDate time.Time      `json:"exportDate"`
	ExportType model.Workflow `json:"exportType"`
	Items      model.List     `json:"items"`
	Summary    scan.ListStats `json:"summary"`
}

// WriteJSON renders the list as a pretty-printed export document.
func WriteJSON(w io.Writer, workflow model.Workflow, list model.List) error {
	document := ExportDocument{
		ExportDate: time.Now().UTC(),
		ExportType: workflow,
		Items:      list,
		Summary:    scan.ComputeStats(list),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// WriteCSV renders the list as semicolon-delimited CSV with progress columns.
// Semicolon keeps the files directly openable in the spreadsheet locales the
// operators use.
func WriteCSV(w io.Writer, list model.List) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	header := []string{"id", "description", "quantity", "scannedCount", "completed", "weight", "condition"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, item := range list {
		record := []string{
			item.ID,
			item.Description,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.ScannedCount),
			strconv.FormatBool(item.Completed),
			strconv.FormatFloat(item.Weight, 'f', -1, 64),
			item.Condition,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteText renders a human-readable progress sheet for printing or pasting
// into a message.
func WriteText(w io.Writer, workflow model.Workflow, list model.List) error {
	stats := scan.ComputeStats(list)

	if _, err := fmt.Fprintf(w, "%s: %d/%d items complete, %d/%d units (%d%%)\n\n",
		workflow, stats.CompletedItems, stats.TotalItems,
		stats.ScannedUnits, stats.RequiredUnits, stats.PercentComplete); err != nil {
		return err
	}

	for _, item := range list {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %s  %s  %d/%d", mark, item.ID, item.Description, item.ScannedCount, item.Quantity)
		if item.Condition != "" {
			line += "  (" + item.Condition + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
