package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestSheet creates an xlsx file with the given rows on Sheet1.
func writeTestSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "vacancies.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestReadVacanciesXLSX(t *testing.T) {
	path := writeTestSheet(t, [][]interface{}{
		{"Vacature", "Bedrijf", "Locatie"},
		{"Monteur Elektrotechniek", "Unica", "Utrecht"},
		{"Werkvoorbereider", "SPIE", ""},
	})

	got, err := ReadVacanciesXLSX(path)
	if err != nil {
		t.Fatalf("ReadVacanciesXLSX: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title() != "Monteur Elektrotechniek" || got[0].Company() != "Unica" || got[0].Location() != "Utrecht" {
		t.Errorf("first vacancy = %q %q %q", got[0].Title(), got[0].Company(), got[0].Location())
	}
	if got[1].Location() != "" {
		t.Errorf("second location = %q, want empty", got[1].Location())
	}
}

func TestReadVacanciesXLSX_EnglishHeaders(t *testing.T) {
	path := writeTestSheet(t, [][]interface{}{
		{"Title", "Company", "Location"},
		{"Software Engineer", "TechCorp", "Eindhoven"},
	})

	got, err := ReadVacanciesXLSX(path)
	if err != nil {
		t.Fatalf("ReadVacanciesXLSX: %v", err)
	}
	if len(got) != 1 || got[0].Title() != "Software Engineer" {
		t.Fatalf("got = %v", got)
	}
}

func TestReadVacanciesXLSX_BannerAboveHeader(t *testing.T) {
	path := writeTestSheet(t, [][]interface{}{
		{"Openstaande vacatures Q3"},
		{},
		{"Functietitel", "Bedrijfsnaam", "Standplaats"},
		{"Tekenaar", "Croonwolter&dros", "Rotterdam"},
	})

	got, err := ReadVacanciesXLSX(path)
	if err != nil {
		t.Fatalf("ReadVacanciesXLSX: %v", err)
	}
	if len(got) != 1 || got[0].Title() != "Tekenaar" {
		t.Fatalf("got = %v", got)
	}
}

func TestReadVacanciesXLSX_SkipsEmptyTitles(t *testing.T) {
	path := writeTestSheet(t, [][]interface{}{
		{"Vacature", "Bedrijf"},
		{"", "Unica"},
		{"   ", "SPIE"},
		{"Monteur", "Unica"},
	})

	got, err := ReadVacanciesXLSX(path)
	if err != nil {
		t.Fatalf("ReadVacanciesXLSX: %v", err)
	}
	if len(got) != 1 || got[0].Title() != "Monteur" {
		t.Fatalf("got = %v", got)
	}
}

func TestReadVacanciesXLSX_NoTitleColumn(t *testing.T) {
	path := writeTestSheet(t, [][]interface{}{
		{"Naam", "Adres"},
		{"Jan", "Utrecht"},
	})

	if _, err := ReadVacanciesXLSX(path); err == nil {
		t.Fatal("expected error for missing title column")
	}
}

func TestReadVacanciesXLSX_MissingFile(t *testing.T) {
	if _, err := ReadVacanciesXLSX(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
