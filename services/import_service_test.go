package services

import (
	"strings"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name         string
		header       []string
		wantSubjects []string
		wantErr      bool
	}{
		{
			name:         "valid header",
			header:       []string{"Full Name", "Parent Phone", "Student Phone", "Batch Year", "Mathematics", "Physics"},
			wantSubjects: []string{"Mathematics", "Physics"},
		},
		{
			name:         "case insensitive fixed columns",
			header:       []string{"full name", "PARENT PHONE", "Student Phone", "batch year", "Chemistry"},
			wantSubjects: []string{"Chemistry"},
		},
		{
			name:         "blank trailing subject cells skipped",
			header:       []string{"Full Name", "Parent Phone", "Student Phone", "Batch Year", "Mathematics", "", " "},
			wantSubjects: []string{"Mathematics"},
		},
		{
			name:    "missing fixed column",
			header:  []string{"Full Name", "Parent Phone", "Batch Year", "Mathematics"},
			wantErr: true,
		},
		{
			name:    "no subject columns",
			header:  []string{"Full Name", "Parent Phone", "Student Phone", "Batch Year"},
			wantErr: true,
		},
		{
			name:    "too short",
			header:  []string{"Full Name"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			subjects, err := parseHeader(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got subjects %v", subjects)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(subjects) != len(tc.wantSubjects) {
				t.Fatalf("subjects = %v, want %v", subjects, tc.wantSubjects)
			}
			for i := range subjects {
				if subjects[i] != tc.wantSubjects[i] {
					t.Fatalf("subjects = %v, want %v", subjects, tc.wantSubjects)
				}
			}
		})
	}
}

func TestParseRow(t *testing.T) {
	subjectColumns := []string{"Mathematics", "Physics", "Chemistry"}

	tests := []struct {
		name         string
		row          []string
		wantName     string
		wantSubjects []string
		wantYear     int
		wantErr      string
	}{
		{
			name:         "valid row",
			row:          []string{"John Doe", "0771234567", "0712345678", "2024", "1", "1", "0"},
			wantName:     "John Doe",
			wantYear:     2024,
			wantSubjects: []string{"Mathematics", "Physics"},
		},
		{
			name:         "excel numeric cells",
			row:          []string{"Jane Smith", "0773456789", "", "2024.0", "0", "0", "1.0"},
			wantName:     "Jane Smith",
			wantYear:     2024,
			wantSubjects: []string{"Chemistry"},
		},
		{
			name:         "phone with punctuation",
			row:          []string{"Bob Johnson", "077-123 4567", "", "2025", "1", "0", "0"},
			wantName:     "Bob Johnson",
			wantYear:     2025,
			wantSubjects: []string{"Mathematics"},
		},
		{
			name:         "short row padded with empty flags",
			row:          []string{"Ann Lee", "0771234567", "", "2024", "1"},
			wantName:     "Ann Lee",
			wantYear:     2024,
			wantSubjects: []string{"Mathematics"},
		},
		{
			name:    "missing name",
			row:     []string{"", "0771234567", "", "2024", "1", "0", "0"},
			wantErr: "full name",
		},
		{
			name:    "bad parent phone",
			row:     []string{"John Doe", "12345", "", "2024", "1", "0", "0"},
			wantErr: "parent phone",
		},
		{
			name:    "bad student phone",
			row:     []string{"John Doe", "0771234567", "999", "2024", "1", "0", "0"},
			wantErr: "student phone",
		},
		{
			name:    "bad batch year",
			row:     []string{"John Doe", "0771234567", "", "twenty", "1", "0", "0"},
			wantErr: "batch year",
		},
		{
			name:    "bad flag value",
			row:     []string{"John Doe", "0771234567", "", "2024", "yes", "0", "0"},
			wantErr: "expected 1 or 0",
		},
		{
			name:    "no subjects selected",
			row:     []string{"John Doe", "0771234567", "", "2024", "0", "0", "0"},
			wantErr: "at least one subject",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := parseRow(2, tc.row, subjectColumns)
			if tc.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got row %+v", tc.wantErr, parsed)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("error %q does not mention %q", err.Error(), tc.wantErr)
				}
				if !strings.Contains(err.Error(), "Row 2") {
					t.Fatalf("error %q does not carry the row number", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if parsed.fullName != tc.wantName {
				t.Fatalf("fullName = %q, want %q", parsed.fullName, tc.wantName)
			}
			if parsed.batchYear != tc.wantYear {
				t.Fatalf("batchYear = %d, want %d", parsed.batchYear, tc.wantYear)
			}
			if len(parsed.subjectNames) != len(tc.wantSubjects) {
				t.Fatalf("subjects = %v, want %v", parsed.subjectNames, tc.wantSubjects)
			}
			for i := range parsed.subjectNames {
				if parsed.subjectNames[i] != tc.wantSubjects[i] {
					t.Fatalf("subjects = %v, want %v", parsed.subjectNames, tc.wantSubjects)
				}
			}
		})
	}
}

func TestParseIntCell(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "2024", want: 2024},
		{input: "2024.0", want: 2024},
		{input: "1", want: 1},
		{input: "1.5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseIntCell(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseIntCell(%q) = %d, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseIntCell(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseIntCell(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseFlagCell(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{input: "1", want: true},
		{input: "1.0", want: true},
		{input: "0", want: false},
		{input: "0.0", want: false},
		{input: "", want: false},
		{input: "2", wantErr: true},
		{input: "yes", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseFlagCell(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseFlagCell(%q) = %v, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseFlagCell(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseFlagCell(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestImportErrorMessage(t *testing.T) {
	err := notFoundf("batch %d not found", 2024)
	if got := importErrorMessage(err); got != "batch 2024 not found" {
		t.Fatalf("importErrorMessage = %q", got)
	}
}
