package utils

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"journeytrack/api/models"
)

// Field validators for touchpoint ingestion. Records are parsed into typed
// request structs first; these checks then produce a list of human-readable
// messages. A record is accepted whole or rejected whole, never partially.

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

func IsValidIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// IsValidTime accepts HH:MM:SS.
func IsValidTime(value string) bool {
	_, err := time.Parse("15:04:05", value)
	return err == nil
}

// IsValidDate accepts YYYY-MM-DD dates that are not in the future.
func IsValidDate(value string) bool {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return false
	}
	endOfToday := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
	return !date.After(endOfToday)
}

func IsPositiveInteger(value int) bool {
	return value > 0
}

func IsNonEmptyString(value string) bool {
	return strings.TrimSpace(value) != ""
}

func IsValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleAnalyst, models.RoleViewer:
		return true
	default:
		return false
	}
}

// IsValidInterval limits time-bucket intervals to the ones ClickHouse's
// toStartOf* functions support.
func IsValidInterval(interval string) bool {
	switch interval {
	case "Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year":
		return true
	default:
		return false
	}
}

func ValidateWebsiteVisit(req models.WebsiteVisitRequest) []string {
	var errors []string

	if !IsValidIP(req.IP) {
		errors = append(errors, "Invalid IP address format")
	}
	if !IsNonEmptyString(req.OwnerContact) {
		errors = append(errors, "Owner contact is required")
	}
	if !IsPositiveInteger(req.NumberOfVisits) {
		errors = append(errors, "Number of visits must be a positive integer")
	}
	if !IsPositiveInteger(req.WebsiteDuration) {
		errors = append(errors, "Website duration must be a positive integer")
	}
	if !IsNonEmptyString(req.Location) {
		errors = append(errors, "Location is required")
	}
	if !IsValidTime(req.Time) {
		errors = append(errors, "Invalid time format (use HH:MM:SS)")
	}
	if !IsValidDate(req.Date) {
		errors = append(errors, "Invalid date or future date not allowed")
	}

	return errors
}

func ValidateStoreVisit(req models.StoreVisitRequest) []string {
	var errors []string

	if !IsNonEmptyString(req.OwnerContact) {
		errors = append(errors, "Owner contact is required")
	}
	if !IsPositiveInteger(req.NumberOfVisits) {
		errors = append(errors, "Number of visits must be a positive integer")
	}
	if !IsNonEmptyString(req.Location) {
		errors = append(errors, "Location is required")
	}
	if !IsValidTime(req.Time) {
		errors = append(errors, "Invalid time format (use HH:MM:SS)")
	}
	if !IsValidDate(req.Date) {
		errors = append(errors, "Invalid date or future date not allowed")
	}

	return errors
}

func ValidateSignupEvent(req models.SignupEventRequest) []string {
	var errors []string

	if !IsNonEmptyString(req.Username) {
		errors = append(errors, "Username is required")
	}
	if !IsValidEmail(req.Email) {
		errors = append(errors, "Invalid email address")
	}
	if !IsNonEmptyString(req.Location) {
		errors = append(errors, "Location is required")
	}
	if !IsValidTime(req.Time) {
		errors = append(errors, "Invalid time format (use HH:MM:SS)")
	}
	if !IsValidDate(req.Date) {
		errors = append(errors, "Invalid date or future date not allowed")
	}

	return errors
}

func ValidateRegistration(req models.RegisterRequest) []string {
	var errors []string

	if !IsNonEmptyString(req.Name) {
		errors = append(errors, "Name is required")
	}
	if !IsValidEmail(req.Email) {
		errors = append(errors, "Invalid email address")
	}
	if len(req.Password) < 8 {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if req.Password != req.ConfirmPassword {
		errors = append(errors, "Passwords do not match")
	}
	if !IsValidRole(req.Role) {
		errors = append(errors, "Invalid role selected")
	}

	return errors
}

// ValidateDateRange checks the optional startDate/endDate query parameters.
// Either bound may be empty (unbounded on that side).
func ValidateDateRange(startDate, endDate string) error {
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date '%s', use YYYY-MM-DD", d)
		}
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return fmt.Errorf("startDate must not be after endDate")
	}
	return nil
}
