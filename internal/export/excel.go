package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/querydex/internal/usecase/pipeline"
	"github.com/kailas-cloud/querydex/internal/usecase/similarity"
)

// WriteTaxonomyXLSX writes the full taxonomy export: one row per group per
// variant, plus a summary sheet counting searches per variant.
func WriteTaxonomyXLSX(path string, rows []pipeline.TaxonomyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Boolean_Searches"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{
		"Group_ID", "Group_Name", "Category", "Search_Type",
		"Boolean_Query", "Titles", "Skills", "Look_Alikes", "Competitors",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	variantCounts := map[string]int{}
	for i, row := range rows {
		cells := []interface{}{
			row.GroupID, row.GroupName, row.Category, string(row.Variant),
			row.Query, row.Titles, row.Skills, row.LookAlikes, row.Competitors,
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
		variantCounts[string(row.Variant)]++
	}

	if err := writeSummarySheet(f, variantCounts); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteVacanciesXLSX writes compiled vacancy searches plus two pivot sheets:
// searches per group per variant, and the priority distribution.
func WriteVacanciesXLSX(path string, rows []pipeline.VacancyRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Vacancy_Searches"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{
		"Vacancy_ID", "Title", "Company", "Location", "Group",
		"Search_Type", "Priority", "Boolean_Query", "Boolean_Query_With_Location",
		"Expected_Results",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	groupVariant := map[string]map[string]int{}
	priorityCounts := map[string]int{}
	for i, row := range rows {
		cells := []interface{}{
			row.VacancyID, row.Title, row.Company, row.Location, row.GroupName,
			string(row.Variant), string(row.Priority), row.Query, row.QueryWithLocation,
			row.ExpectedResults,
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}

		if groupVariant[row.GroupName] == nil {
			groupVariant[row.GroupName] = map[string]int{}
		}
		groupVariant[row.GroupName][string(row.Variant)]++
		priorityCounts[string(row.Priority)]++
	}

	if err := writePivotSheet(f, "By_Group", groupVariant); err != nil {
		return err
	}
	if err := writeCountSheet(f, "Priority_Distribution", "Priority", priorityCounts); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteMatrixXLSX writes the similarity matrix with two-decimal formatting.
func WriteMatrixXLSX(path string, m similarity.Matrix) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Similarity_Matrix"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(m.Names)+1)
	header = append(header, "Group")
	for _, name := range m.Names {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, name := range m.Names {
		cells := make([]interface{}, 0, len(m.Scores[i])+1)
		cells = append(cells, name)
		for _, score := range m.Scores[i] {
			cells = append(cells, score)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	// 0.00 number format over the score range.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("matrix style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(m.Names)+1, len(m.Names)+1)
	if err != nil {
		return fmt.Errorf("matrix range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "B2", last, style); err != nil {
		return fmt.Errorf("apply matrix style: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, variantCounts map[string]int) error {
	return writeCountSheet(f, "Summary", "Search_Type", variantCounts)
}

// writeCountSheet writes a simple label/count sheet in sorted label order.
func writeCountSheet(f *excelize.File, sheet, label string, counts map[string]int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	header := []interface{}{label, "Count"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %q header: %w", sheet, err)
	}

	for i, key := range sortedKeys(counts) {
		cells := []interface{}{key, counts[key]}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

// writePivotSheet writes a rows-by-columns count table.
func writePivotSheet(f *excelize.File, sheet string, table map[string]map[string]int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}

	columnSet := map[string]int{}
	for _, cols := range table {
		for c := range cols {
			columnSet[c]++
		}
	}
	columns := sortedKeys(columnSet)

	header := make([]interface{}, 0, len(columns)+1)
	header = append(header, "Group")
	for _, c := range columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %q header: %w", sheet, err)
	}

	for i, group := range sortedGroupKeys(table) {
		cells := make([]interface{}, 0, len(columns)+1)
		cells = append(cells, group)
		for _, c := range columns {
			cells = append(cells, table[group][c])
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedGroupKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
