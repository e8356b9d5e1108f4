package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadsearch-cli/internal/model"
)

func samplePeople() []model.PersonLead {
	return []model.PersonLead{
		{
			Name:        "Dana Cohen",
			LinkedInURL: "https://www.linkedin.com/in/dana-cohen",
			Handle:      "dana-cohen",
			Segment:     "Students",
			Engine:      "google_dorks",
			Status:      model.StatusIdentified,
			FoundAt:     "2026-08-31",
		},
		{
			Name:        "נועה לוי",
			LinkedInURL: "https://www.linkedin.com/in/noa-levi",
			Handle:      "noa-levi",
			Segment:     "Students",
			Engine:      "linkedin_api",
			Status:      model.StatusIdentified,
			FoundAt:     "2026-08-31",
		},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "leads.csv")
	require.NoError(t, WriteCSV(path, model.PersonFields, samplePeople()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, model.PersonFields, rows[0])
	assert.Equal(t, "Dana Cohen", rows[1][0])
	// Hebrew values survive the round trip.
	assert.Equal(t, "נועה לוי", rows[2][0])
}

func TestWriteCSV_EmptyLeadsStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, WriteCSV(path, model.OrgFields, []model.OrgLead{}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.OrgFields, rows[0])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "leads.xlsx")
	require.NoError(t, WriteXLSX(path, "Leads", model.PersonFields, samplePeople()))

	wb, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	sheet := wb.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, model.PersonFields[0], sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Dana Cohen", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "נועה לוי", sheet.Rows[2].Cells[0].String())
}
