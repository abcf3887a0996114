package utils

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"journeytrack/api/models"
)

// RenderCSV writes a header row followed by one row per record. encoding/csv
// applies standard escaping: values containing commas, quotes or newlines are
// quoted with internal quotes doubled, so every field round-trips exactly.
func RenderCSV(headers []string, rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}

func WebsiteVisitCSV(visits []models.WebsiteVisit) ([]string, [][]string) {
	headers := []string{"id", "ip", "owner_contact", "number_of_visits", "page_visits", "website_duration", "location", "time", "date", "created_at"}
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			v.ID,
			v.IP,
			v.OwnerContact,
			strconv.Itoa(v.NumberOfVisits),
			strconv.Itoa(v.PageVisits),
			strconv.Itoa(v.WebsiteDuration),
			v.Location,
			v.Time,
			v.Date,
			v.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return headers, rows
}

func StoreVisitCSV(visits []models.StoreVisit) ([]string, [][]string) {
	headers := []string{"id", "owner_contact", "number_of_visits", "location", "time", "date", "created_at"}
	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			v.ID,
			v.OwnerContact,
			strconv.Itoa(v.NumberOfVisits),
			v.Location,
			v.Time,
			v.Date,
			v.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return headers, rows
}

func SignupEventCSV(events []models.SignupEvent) ([]string, [][]string) {
	headers := []string{"id", "username", "email", "location", "time", "date", "created_at"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			e.ID,
			e.Username,
			e.Email,
			e.Location,
			e.Time,
			e.Date,
			e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return headers, rows
}
