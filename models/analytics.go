package models

import "time"

// FunnelStage is one step of the conversion funnel, derived per request and
// never persisted. ConversionFromPrevious is nil for the top stage.
type FunnelStage struct {
	Name                   string   `json:"name"`
	Count                  int      `json:"count"`
	Percentage             float64  `json:"percentage"`
	ConversionFromPrevious *float64 `json:"conversionFromPrevious,omitempty"`
}

type FunnelOverall struct {
	TotalWebsiteVisits    int     `json:"totalWebsiteVisits"`
	TotalStoreVisits      int     `json:"totalStoreVisits"`
	TotalSignups          int     `json:"totalSignups"`
	OverallConversionRate float64 `json:"overallConversionRate"`
}

type FunnelResult struct {
	Stages  []FunnelStage `json:"stages"`
	Overall FunnelOverall `json:"overall"`
}

// ContactSummary is the per-contact rollup shown on the contacts list.
// WebsiteVisits and StoreVisits sum number_of_visits across events.
type ContactSummary struct {
	Contact         string    `json:"contact"`
	WebsiteVisits   int       `json:"websiteVisits"`
	StoreVisits     int       `json:"storeVisits"`
	FirstTouchpoint time.Time `json:"firstTouchpoint"`
	LastTouchpoint  time.Time `json:"lastTouchpoint"`
}

// TouchEvent is a website or store visit tagged with its origin channel,
// used for the merged journey timeline.
type TouchEvent struct {
	Type           string    `json:"type"`
	ID             string    `json:"id"`
	NumberOfVisits int       `json:"number_of_visits"`
	Location       string    `json:"location"`
	Time           string    `json:"time"`
	Date           string    `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	TouchTypeWebsite = "website"
	TouchTypeStore   = "store"
)

// Journey is the full interaction history for one contact: the raw per-channel
// lists, the merged time-ordered timeline, and scalar summaries. Touchpoint
// pointers are nil when the contact has no events.
type Journey struct {
	Contact            string         `json:"contact"`
	WebsiteVisits      []WebsiteVisit `json:"websiteVisits"`
	StoreVisits        []StoreVisit   `json:"storeVisits"`
	Timeline           []TouchEvent   `json:"timeline"`
	TotalWebsiteVisits int            `json:"totalWebsiteVisits"`
	TotalStoreVisits   int            `json:"totalStoreVisits"`
	FirstTouchpoint    *time.Time     `json:"firstTouchpoint"`
	LastTouchpoint     *time.Time     `json:"lastTouchpoint"`
}

// StreamEvent is one append-only row of the ClickHouse touchpoint stream,
// written on every accepted ingestion for volume statistics.
type StreamEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Contact   string    `json:"contact"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

type StreamCountByTime struct {
	Time      time.Time `json:"time"`
	EventType *string   `json:"eventType,omitempty"`
	Count     uint64    `json:"count"`
}
