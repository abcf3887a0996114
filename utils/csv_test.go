package utils

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"journeytrack/api/models"
)

func TestRenderCSVEscaping(t *testing.T) {
	content, err := RenderCSV(
		[]string{"contact", "note"},
		[][]string{{"alice@example.com", `He said, "hi"`}},
	)
	if err != nil {
		t.Fatalf("RenderCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "contact,note" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `alice@example.com,"He said, ""hi"""` {
		t.Errorf("row = %q, want escaped quotes and comma", lines[1])
	}
}

func TestRenderCSVRoundTrip(t *testing.T) {
	rows := [][]string{
		{"1", `He said, "hi"`},
		{"2", "line one\nline two"},
		{"3", "plain"},
		{"4", `commas, "quotes", and
newlines`},
	}

	content, err := RenderCSV([]string{"id", "value"}, rows)
	if err != nil {
		t.Fatalf("RenderCSV returned error: %v", err)
	}

	parsed, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(parsed) != len(rows)+1 {
		t.Fatalf("expected %d records, got %d", len(rows)+1, len(parsed))
	}

	for i, want := range rows {
		got := parsed[i+1]
		if len(got) != len(want) {
			t.Fatalf("row %d has %d fields, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("row %d field %d = %q, want %q", i, j, got[j], want[j])
			}
		}
	}
}

func TestWebsiteVisitCSV(t *testing.T) {
	createdAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	visits := []models.WebsiteVisit{{
		ID:              "abc-123",
		IP:              "1.2.3.4",
		OwnerContact:    "alice@example.com",
		NumberOfVisits:  3,
		PageVisits:      7,
		WebsiteDuration: 240,
		Location:        "Berlin, Germany",
		Time:            "10:30:00",
		Date:            "2024-01-15",
		CreatedAt:       createdAt,
	}}

	headers, rows := WebsiteVisitCSV(visits)
	if len(headers) != 10 {
		t.Fatalf("expected 10 columns, got %d", len(headers))
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != "abc-123" || rows[0][3] != "3" || rows[0][6] != "Berlin, Germany" {
		t.Errorf("unexpected row: %v", rows[0])
	}
	if rows[0][9] != "2024-01-15T10:30:00Z" {
		t.Errorf("created_at = %q", rows[0][9])
	}

	// The comma inside the location must survive a full render+parse cycle.
	content, err := RenderCSV(headers, rows)
	if err != nil {
		t.Fatalf("RenderCSV returned error: %v", err)
	}
	parsed, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if parsed[1][6] != "Berlin, Germany" {
		t.Errorf("location after round trip = %q", parsed[1][6])
	}
}

func TestStoreVisitAndSignupCSVShapes(t *testing.T) {
	storeHeaders, storeRows := StoreVisitCSV([]models.StoreVisit{{
		ID: "s1", OwnerContact: "bob", NumberOfVisits: 2, Location: "Munich",
		Time: "09:00:00", Date: "2024-02-02", CreatedAt: time.Now(),
	}})
	if len(storeHeaders) != 7 || len(storeRows[0]) != 7 {
		t.Errorf("store visit CSV shape = %d/%d columns", len(storeHeaders), len(storeRows[0]))
	}

	signupHeaders, signupRows := SignupEventCSV([]models.SignupEvent{{
		ID: "e1", Username: "carol", Email: "carol@example.com", Location: "Hamburg",
		Time: "18:00:00", Date: "2024-03-03", CreatedAt: time.Now(),
	}})
	if len(signupHeaders) != 7 || len(signupRows[0]) != 7 {
		t.Errorf("signup CSV shape = %d/%d columns", len(signupHeaders), len(signupRows[0]))
	}
}
