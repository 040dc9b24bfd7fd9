package analysis

import "testing"

func TestParsePlateMetadata(t *testing.T) {
	tests := []struct {
		name      string
		wantPlate string
		wantDate  string
	}{
		{"PLATE12_20240315.xlsx", "12", "2024-03-15"},
		{"/data/exports/plate-3 15032024.xls", "3", "2024-03-15"},
		{"Plate #7 run 20231231 v2.xlsx", "7", "2023-12-31"},
		{"PLATE5_2024.xlsx", "5", Unknown},
		{"PLATE5_20241399.xlsx", "5", Unknown},
		{"PLATE5_123456789.xlsx", "5", Unknown},
		{"export_20240101.xlsx", Unknown, "2024-01-01"},
		{"20240101_PLATE9.xlsx", "9", Unknown},
		{"", Unknown, Unknown},
	}

	for _, tt := range tests {
		plate, date := ParsePlateMetadata(tt.name)
		if plate != tt.wantPlate || date != tt.wantDate {
			t.Errorf("ParsePlateMetadata(%q) = (%q, %q), want (%q, %q)", tt.name, plate, date, tt.wantPlate, tt.wantDate)
		}
	}
}
