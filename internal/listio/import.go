// Package listio parses and renders workflow lists and barcode catalogs in
// the interchange formats the scanning stations exchange: delimiter-sniffed
// CSV, JSON (including the legacy Norwegian column aliases), and the text
// layout produced by order-document extraction.
package listio

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/wareline/wareline/internal/warehouse/model"
)

// orderLine matches rows extracted from supplier order documents, e.g.
// "263-L01680  4  ________  ________  Some description (1)".
var (
	orderLine = regexp.MustCompile(`^(\d{3}-[A-Z0-9]+)\s+(\d+)\s+`)
	orderDesc = regexp.MustCompile(`\d+\s+________\s+________\s+(.*?)\s+\(\d+\)`)
)

// ParseListCSV reads a workflow list from CSV or order-document text. The
// delimiter is sniffed (semicolon wins when present, matching the exports of
// Scandinavian spreadsheet locales), a header row is skipped when detected,
// and rows with fewer than two columns are ignored. defaultWeight fills the
// weight of rows that do not carry one.
func ParseListCSV(r io.Reader, defaultWeight float64) (model.List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}
	content := string(data)

	if isOrderDocument(content) {
		return parseOrderDocument(content, defaultWeight), nil
	}

	comma := ','
	if strings.Contains(content, ";") {
		comma = ';'
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	var list model.List
	for i, record := range records {
		if i == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 2 {
			continue
		}

		id := strings.TrimSpace(record[0])
		if id == "" {
			continue
		}
		item := &model.Item{
			ID:          id,
			Description: strings.TrimSpace(record[1]),
			Quantity:    1,
			Weight:      defaultWeight,
		}
		if len(record) > 2 {
			if quantity, err := strconv.Atoi(strings.TrimSpace(record[2])); err == nil && quantity > 0 {
				item.Quantity = quantity
			}
		}
		if len(record) > 3 {
			if weight, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64); err == nil && weight >= 0 {
				item.Weight = weight
			}
		}
		list = append(list, item)
	}
	return list, nil
}

func isOrderDocument(content string) bool {
	return strings.Contains(content, "Varenr.") &&
		strings.Contains(content, "Beskrivelse") &&
		strings.Contains(content, "Bestilt")
}

// headerIDTokens are the labels a header row carries in its id column.
// Matching the id cell exactly keeps a headerless row whose description
// happens to contain one of these words from being dropped as a header.
var headerIDTokens = map[string]bool{
	"id":         true,
	"varenr":     true,
	"varenr.":    true,
	"varenummer": true,
	"nummer":     true,
	"itemid":     true,
	"item id":    true,
}

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	return headerIDTokens[strings.ToLower(strings.TrimSpace(record[0]))]
}

func parseOrderDocument(content string, defaultWeight float64) model.List {
	var list model.List
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		match := orderLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		description := "Ukjent beskrivelse"
		if descMatch := orderDesc.FindStringSubmatch(line); descMatch != nil {
			description = strings.TrimSpace(descMatch[1])
		}
		quantity, err := strconv.Atoi(match[2])
		if err != nil || quantity < 1 {
			quantity = 1
		}

		list = append(list, &model.Item{
			ID:          match[1],
			Description: description,
			Quantity:    quantity,
			Weight:      defaultWeight,
		})
	}
	return list
}

// jsonItem accepts both the native field names and the legacy Norwegian
// aliases older exports used.
type jsonItem struct {
	ID            string  `json:"id"`
	Varenr        string  `json:"varenr"`
	Description   string  `json:"description"`
	Beskrivelse   string  `json:"beskrivelse"`
	Quantity      int     `json:"quantity"`
	Antall        int     `json:"antall"`
	Weight        float64 `json:"weight"`
	ScannedCount  int     `json:"scannedCount"`
	Condition     string  `json:"condition"`
}

type jsonListDocument struct {
	Items []jsonItem `json:"items"`
}

// ParseListJSON reads a workflow list from JSON: either a bare array of items
// or a document with an "items" array. Progress fields are deliberately
// dropped so an imported list always starts fresh.
func ParseListJSON(data []byte, defaultWeight float64) (model.List, error) {
	var raw []jsonItem
	if err := json.Unmarshal(data, &raw); err != nil {
		var document jsonListDocument
		if err := json.Unmarshal(data, &document); err != nil || document.Items == nil {
			return nil, fmt.Errorf("failed to parse list JSON: expected an array or an items document")
		}
		raw = document.Items
	}

	var list model.List
	for _, entry := range raw {
		id := entry.ID
		if id == "" {
			id = entry.Varenr
		}
		if id == "" {
			continue
		}
		description := entry.Description
		if description == "" {
			description = entry.Beskrivelse
		}
		quantity := entry.Quantity
		if quantity == 0 {
			quantity = entry.Antall
		}
		if quantity < 1 {
			quantity = 1
		}
		weight := entry.Weight
		if weight <= 0 {
			weight = defaultWeight
		}

		list = append(list, &model.Item{
			ID:          id,
			Description: description,
			Quantity:    quantity,
			Weight:      weight,
			Condition:   entry.Condition,
		})
	}
	return list, nil
}

// ParseCatalogJSON reads a barcode catalog: an object mapping barcode tokens
// to either bare item id strings or entry objects.
func ParseCatalogJSON(data []byte) (model.BarcodeMapping, error) {
	var mapping model.BarcodeMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse barcode catalog: %w", err)
	}
	if mapping == nil {
		return nil, fmt.Errorf("barcode catalog is empty")
	}
	return mapping, nil
}
