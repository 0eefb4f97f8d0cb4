// Package export reads vacancy input files and writes the export artifacts:
// Excel workbooks, JSON reports, and JSONL training datasets. Formatting
// concerns live here; the engine only produces structured data.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/querydex/internal/domain/vacancy"
)

// Column aliases accepted in vacancy input sheets.
var (
	titleColumns    = []string{"Vacature", "Functietitel", "Title"}
	companyColumns  = []string{"Bedrijf", "Bedrijfsnaam", "Company"}
	locationColumns = []string{"Locatie", "Standplaats", "Location"}
)

// headerScanLimit is how many leading rows are searched for the header row.
// Vacancy sheets commonly carry a banner row above the real header.
const headerScanLimit = 5

// ReadVacanciesXLSX reads vacancy rows from the first sheet of an Excel file.
// Rows with an empty title are skipped, not an error.
func ReadVacanciesXLSX(path string) ([]vacancy.Vacancy, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open vacancies %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("vacancies %s: no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	headerRow, titleCol, companyCol, locationCol := findHeader(rows)
	if titleCol < 0 {
		return nil, fmt.Errorf("vacancies %s: no title column found", path)
	}

	vacancies := make([]vacancy.Vacancy, 0, len(rows))
	for _, row := range rows[headerRow+1:] {
		title := cellAt(row, titleCol)
		if strings.TrimSpace(title) == "" {
			continue
		}
		v, err := vacancy.New(title, cellAt(row, companyCol), cellAt(row, locationCol))
		if err != nil {
			continue
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, nil
}

// findHeader locates the header row and the relevant column indexes.
// Returns titleCol == -1 when no recognizable header exists.
func findHeader(rows [][]string) (headerRow, titleCol, companyCol, locationCol int) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		t := columnIndex(rows[i], titleColumns)
		if t < 0 {
			continue
		}
		return i, t, columnIndex(rows[i], companyColumns), columnIndex(rows[i], locationColumns)
	}
	return 0, -1, -1, -1
}

func columnIndex(header []string, aliases []string) int {
	for i, cell := range header {
		for _, alias := range aliases {
			if strings.EqualFold(strings.TrimSpace(cell), alias) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
