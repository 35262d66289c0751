package listio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wareline/wareline/internal/warehouse/model"
)

func TestParseListCSV(t *testing.T) {
	t.Run("Comma Delimited With Header", func(t *testing.T) {
		input := "id,description,quantity\nABC-100,Blue widget,3\nXYZ-200,Red widget,1\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, "ABC-100", list[0].ID)
		assert.Equal(t, "Blue widget", list[0].Description)
		assert.Equal(t, 3, list[0].Quantity)
		assert.Equal(t, 1.0, list[0].Weight)
	})

	t.Run("Semicolon Delimiter Wins When Present", func(t *testing.T) {
		input := "ABC-100;Widget, blue;2\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "Widget, blue", list[0].Description)
		assert.Equal(t, 2, list[0].Quantity)
	})

	t.Run("Headerless Row With Header Word In Description Is Kept", func(t *testing.T) {
		input := "ABC-100,Widget,2\nXYZ-200,Varenummer label,1\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, "ABC-100", list[0].ID)
		assert.Equal(t, "Widget", list[0].Description)
	})

	t.Run("Norwegian Header Row Is Skipped", func(t *testing.T) {
		input := "Varenr.;Beskrivelse;Antall\nABC-100;Skuffefront;2\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "ABC-100", list[0].ID)
	})

	t.Run("Missing Quantity Defaults To One", func(t *testing.T) {
		list, err := ParseListCSV(strings.NewReader("ABC-100,Widget\n"), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, list[0].Quantity)
	})

	t.Run("Weight Column Overrides Default", func(t *testing.T) {
		list, err := ParseListCSV(strings.NewReader("ABC-100,Widget,2,4.5\n"), 1.0)
		assert.NoError(t, err)
		assert.Equal(t, 4.5, list[0].Weight)
	})

	t.Run("Skips Short And Blank Rows", func(t *testing.T) {
		input := "ABC-100,Widget,2\nlonely\n\nXYZ-200,Gadget\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("Order Document Text Layout", func(t *testing.T) {
		input := "Varenr. Bestilt Beskrivelse\n" +
			"263-L01680 4 ________ ________ Skuffefront eik (1)\n" +
			"000-BH3242 2 ________ ________ Hengsel sett (3)\n" +
			"ignored footer line\n"

		list, err := ParseListCSV(strings.NewReader(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.Equal(t, "263-L01680", list[0].ID)
		assert.Equal(t, 4, list[0].Quantity)
		assert.Equal(t, "Skuffefront eik", list[0].Description)
		assert.Equal(t, "000-BH3242", list[1].ID)
	})
}

func TestParseListJSON(t *testing.T) {
	t.Run("Bare Array", func(t *testing.T) {
		input := `[{"id":"ABC-100","description":"Widget","quantity":2,"weight":3.5}]`

		list, err := ParseListJSON([]byte(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 2, list[0].Quantity)
		assert.Equal(t, 3.5, list[0].Weight)
	})

	t.Run("Items Document", func(t *testing.T) {
		input := `{"items":[{"id":"ABC-100","description":"Widget"}]}`

		list, err := ParseListJSON([]byte(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, 1, list[0].Quantity)
		assert.Equal(t, 1.0, list[0].Weight)
	})

	t.Run("Legacy Norwegian Aliases", func(t *testing.T) {
		input := `[{"varenr":"ABC-100","beskrivelse":"Skuffefront","antall":4}]`

		list, err := ParseListJSON([]byte(input), 1.0)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "ABC-100", list[0].ID)
		assert.Equal(t, "Skuffefront", list[0].Description)
		assert.Equal(t, 4, list[0].Quantity)
	})

	t.Run("Imported Lists Start Fresh", func(t *testing.T) {
		input := `[{"id":"ABC-100","quantity":2,"scannedCount":2,"completed":true}]`

		list, err := ParseListJSON([]byte(input), 1.0)
		assert.NoError(t, err)
		assert.Equal(t, 0, list[0].ScannedCount)
		assert.False(t, list[0].Completed)
	})

	t.Run("Rejects Non List Payloads", func(t *testing.T) {
		_, err := ParseListJSON([]byte(`{"barcode":"id"}`), 1.0)
		assert.Error(t, err)
	})
}

func TestParseCatalogJSON(t *testing.T) {
	t.Run("Bare String Entries", func(t *testing.T) {
		mapping, err := ParseCatalogJSON([]byte(`{"590123":"ABC-100"}`))
		assert.NoError(t, err)
		assert.Equal(t, "ABC-100", mapping["590123"].ItemID)
	})

	t.Run("Object Entries", func(t *testing.T) {
		mapping, err := ParseCatalogJSON([]byte(`{"590123":{"id":"ABC-100","description":"Widget"}}`))
		assert.NoError(t, err)
		assert.Equal(t, "ABC-100", mapping["590123"].ItemID)
		assert.Equal(t, "Widget", mapping["590123"].Description)
	})

	t.Run("Rejects Invalid JSON", func(t *testing.T) {
		_, err := ParseCatalogJSON([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	list := model.List{
		{ID: "ABC-100", Description: "Widget", Quantity: 3, ScannedCount: 3, Completed: true, Weight: 2.5},
		{ID: "XYZ-200", Description: "Gadget", Quantity: 2, ScannedCount: 1, Weight: 1, Condition: "damaged"},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, list))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "id;description;quantity;scannedCount;completed;weight;condition", lines[0])
	assert.Equal(t, "ABC-100;Widget;3;3;true;2.5;", lines[1])
	assert.Equal(t, "XYZ-200;Gadget;2;1;false;1;damaged", lines[2])
}

func TestWriteJSON(t *testing.T) {
	list := model.List{
		{ID: "ABC-100", Quantity: 3, ScannedCount: 2, Weight: 1},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, model.WorkflowPicking, list))

	output := buf.String()
	assert.Contains(t, output, `"exportType": "PICKING"`)
	assert.Contains(t, output, `"ABC-100"`)
	assert.Contains(t, output, `"summary"`)
}

func TestWriteText(t *testing.T) {
	list := model.List{
		{ID: "ABC-100", Description: "Widget", Quantity: 3, ScannedCount: 3, Completed: true},
		{ID: "XYZ-200", Description: "Gadget", Quantity: 2, ScannedCount: 0, Condition: "damaged"},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteText(&buf, model.WorkflowPicking, list))

	output := buf.String()
	assert.Contains(t, output, "1/2 items complete")
	assert.Contains(t, output, "[x] ABC-100")
	assert.Contains(t, output, "[ ] XYZ-200")
	assert.Contains(t, output, "(damaged)")
}
