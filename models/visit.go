package models

import "time"

// WebsiteVisit is one row of the website_visits collection. The date and time
// fields are caller-supplied display values; chronological ordering in the
// aggregators always uses CreatedAt.
type WebsiteVisit struct {
	ID              string    `json:"id"`
	IP              string    `json:"ip"`
	OwnerContact    string    `json:"owner_contact"`
	NumberOfVisits  int       `json:"number_of_visits"`
	PageVisits      int       `json:"page_visits"`
	WebsiteDuration int       `json:"website_duration"`
	Location        string    `json:"location"`
	Time            string    `json:"time"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
}

type StoreVisit struct {
	ID             string    `json:"id"`
	OwnerContact   string    `json:"owner_contact"`
	NumberOfVisits int       `json:"number_of_visits"`
	Location       string    `json:"location"`
	Time           string    `json:"time"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

// SignupEvent is one row of the login_signup collection. Signups count toward
// the funnel but are never merged into visit totals.
type SignupEvent struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Location  string    `json:"location"`
	Time      string    `json:"time"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type WebsiteVisitRequest struct {
	IP              string `json:"ip"`
	OwnerContact    string `json:"owner_contact"`
	NumberOfVisits  int    `json:"number_of_visits"`
	PageVisits      int    `json:"page_visits"`
	WebsiteDuration int    `json:"website_duration"`
	Location        string `json:"location"`
	Time            string `json:"time"`
	Date            string `json:"date"`
}

type StoreVisitRequest struct {
	OwnerContact   string `json:"owner_contact"`
	NumberOfVisits int    `json:"number_of_visits"`
	Location       string `json:"location"`
	Time           string `json:"time"`
	Date           string `json:"date"`
}

type SignupEventRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Time     string `json:"time"`
	Date     string `json:"date"`
}
