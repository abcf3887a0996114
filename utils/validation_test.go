package utils

import (
	"strings"
	"testing"

	"journeytrack/api/models"
)

func TestIsValidIP(t *testing.T) {
	tests := []struct {
		ip    string
		valid bool
	}{
		{"1.2.3.4", true},
		{"192.168.0.1", true},
		{"::1", true},
		{"2001:db8::ff00:42:8329", true},
		{"999.1.1.1", false},
		{"1.2.3", false},
		{"not-an-ip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidIP(tt.ip); got != tt.valid {
			t.Errorf("IsValidIP(%q) = %v, want %v", tt.ip, got, tt.valid)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"missing-domain@", false},
		{"no-tld@host", false},
		{"spaces in@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.valid {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"00:00:00", true},
		{"12:30:45", true},
		{"23:59:59", true},
		{"12:61:00", false},
		{"12:30", false},
		{"noon", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidTime(tt.value); got != tt.valid {
			t.Errorf("IsValidTime(%q) = %v, want %v", tt.value, got, tt.valid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"2020-01-01", true},
		{"1999-12-31", true},
		{"2999-01-01", false}, // future
		{"2020-13-01", false},
		{"01/01/2020", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidDate(tt.value); got != tt.valid {
			t.Errorf("IsValidDate(%q) = %v, want %v", tt.value, got, tt.valid)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"admin", "manager", "analyst", "viewer"} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"superuser", "Admin", ""} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}

func validWebsiteVisitRequest() models.WebsiteVisitRequest {
	return models.WebsiteVisitRequest{
		IP:              "1.2.3.4",
		OwnerContact:    "alice@example.com",
		NumberOfVisits:  2,
		PageVisits:      5,
		WebsiteDuration: 120,
		Location:        "Berlin",
		Time:            "14:30:00",
		Date:            "2024-01-01",
	}
}

func TestValidateWebsiteVisit(t *testing.T) {
	if errs := ValidateWebsiteVisit(validWebsiteVisitRequest()); len(errs) != 0 {
		t.Errorf("valid record rejected: %v", errs)
	}

	tests := []struct {
		name     string
		mutate   func(*models.WebsiteVisitRequest)
		expected string
	}{
		{"bad ip", func(r *models.WebsiteVisitRequest) { r.IP = "999.0.0.1" }, "Invalid IP address format"},
		{"missing contact", func(r *models.WebsiteVisitRequest) { r.OwnerContact = "  " }, "Owner contact is required"},
		{"zero visits", func(r *models.WebsiteVisitRequest) { r.NumberOfVisits = 0 }, "Number of visits must be a positive integer"},
		{"zero duration", func(r *models.WebsiteVisitRequest) { r.WebsiteDuration = 0 }, "Website duration must be a positive integer"},
		{"missing location", func(r *models.WebsiteVisitRequest) { r.Location = "" }, "Location is required"},
		{"bad time", func(r *models.WebsiteVisitRequest) { r.Time = "2pm" }, "Invalid time format (use HH:MM:SS)"},
		{"future date", func(r *models.WebsiteVisitRequest) { r.Date = "2999-01-01" }, "Invalid date or future date not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validWebsiteVisitRequest()
			tt.mutate(&req)
			errs := ValidateWebsiteVisit(req)
			if len(errs) != 1 || errs[0] != tt.expected {
				t.Errorf("got %v, want exactly [%q]", errs, tt.expected)
			}
		})
	}
}

func TestValidateWebsiteVisitCollectsAllErrors(t *testing.T) {
	errs := ValidateWebsiteVisit(models.WebsiteVisitRequest{})
	if len(errs) != 7 {
		t.Errorf("empty record should fail every check, got %d errors: %v", len(errs), errs)
	}
}

func TestValidateStoreVisit(t *testing.T) {
	valid := models.StoreVisitRequest{
		OwnerContact:   "bob@example.com",
		NumberOfVisits: 1,
		Location:       "Munich",
		Time:           "09:00:00",
		Date:           "2024-02-02",
	}
	if errs := ValidateStoreVisit(valid); len(errs) != 0 {
		t.Errorf("valid record rejected: %v", errs)
	}

	invalid := valid
	invalid.NumberOfVisits = -3
	invalid.Time = "later"
	errs := ValidateStoreVisit(invalid)
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", errs)
	}
}

func TestValidateSignupEvent(t *testing.T) {
	valid := models.SignupEventRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Location: "Hamburg",
		Time:     "18:45:00",
		Date:     "2024-03-03",
	}
	if errs := ValidateSignupEvent(valid); len(errs) != 0 {
		t.Errorf("valid record rejected: %v", errs)
	}

	invalid := valid
	invalid.Email = "not-an-email"
	errs := ValidateSignupEvent(invalid)
	if len(errs) != 1 || !strings.Contains(errs[0], "email") {
		t.Errorf("expected email error, got %v", errs)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := models.RegisterRequest{
		Name:            "Dana",
		Email:           "dana@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            "analyst",
	}
	if errs := ValidateRegistration(valid); len(errs) != 0 {
		t.Errorf("valid registration rejected: %v", errs)
	}

	tests := []struct {
		name     string
		mutate   func(*models.RegisterRequest)
		expected string
	}{
		{"short password", func(r *models.RegisterRequest) { r.Password = "short"; r.ConfirmPassword = "short" }, "Password must be at least 8 characters long"},
		{"mismatch", func(r *models.RegisterRequest) { r.ConfirmPassword = "different" }, "Passwords do not match"},
		{"bad role", func(r *models.RegisterRequest) { r.Role = "root" }, "Invalid role selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := ValidateRegistration(req)
			if len(errs) != 1 || errs[0] != tt.expected {
				t.Errorf("got %v, want exactly [%q]", errs, tt.expected)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"both empty", "", "", false},
		{"start only", "2024-01-01", "", false},
		{"end only", "", "2024-06-30", false},
		{"valid range", "2024-01-01", "2024-06-30", false},
		{"inverted range", "2024-06-30", "2024-01-01", true},
		{"bad start", "yesterday", "2024-06-30", true},
		{"bad end", "2024-01-01", "01-06-2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDateRange(%q, %q) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidInterval(t *testing.T) {
	for _, interval := range []string{"Minute", "Hour", "Day", "Week", "Month", "Quarter", "Year"} {
		if !IsValidInterval(interval) {
			t.Errorf("IsValidInterval(%q) = false, want true", interval)
		}
	}
	for _, interval := range []string{"day", "Second", "Fortnight", ""} {
		if IsValidInterval(interval) {
			t.Errorf("IsValidInterval(%q) = true, want false", interval)
		}
	}
}
