package analytics

import (
	"sort"
	"time"

	"journeytrack/api/models"
)

// BuildJourney merges a contact's website and store visits into one timeline
// ordered by creation timestamp. The sort is stable and website events are
// concatenated first, so ties keep website-before-store order. A contact with
// no events yields empty lists and nil touchpoints.
//
// FirstTouchpoint is taken from website visits only, mirroring the behavior
// the dashboard has always shown; an earlier store visit does not move it.
func BuildJourney(contact string, websiteVisits []models.WebsiteVisit, storeVisits []models.StoreVisit) models.Journey {
	timeline := make([]models.TouchEvent, 0, len(websiteVisits)+len(storeVisits))
	for _, v := range websiteVisits {
		timeline = append(timeline, models.TouchEvent{
			Type:           models.TouchTypeWebsite,
			ID:             v.ID,
			NumberOfVisits: v.NumberOfVisits,
			Location:       v.Location,
			Time:           v.Time,
			Date:           v.Date,
			CreatedAt:      v.CreatedAt,
		})
	}
	for _, v := range storeVisits {
		timeline = append(timeline, models.TouchEvent{
			Type:           models.TouchTypeStore,
			ID:             v.ID,
			NumberOfVisits: v.NumberOfVisits,
			Location:       v.Location,
			Time:           v.Time,
			Date:           v.Date,
			CreatedAt:      v.CreatedAt,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].CreatedAt.Before(timeline[j].CreatedAt)
	})

	var first, last *time.Time
	for _, v := range websiteVisits {
		if first == nil || v.CreatedAt.Before(*first) {
			t := v.CreatedAt
			first = &t
		}
	}
	for _, e := range timeline {
		if last == nil || e.CreatedAt.After(*last) {
			t := e.CreatedAt
			last = &t
		}
	}

	if websiteVisits == nil {
		websiteVisits = []models.WebsiteVisit{}
	}
	if storeVisits == nil {
		storeVisits = []models.StoreVisit{}
	}

	return models.Journey{
		Contact:            contact,
		WebsiteVisits:      websiteVisits,
		StoreVisits:        storeVisits,
		Timeline:           timeline,
		TotalWebsiteVisits: len(websiteVisits),
		TotalStoreVisits:   len(storeVisits),
		FirstTouchpoint:    first,
		LastTouchpoint:     last,
	}
}

// BuildContactDirectory scans all website visits, then all store visits, and
// rolls them up per contact. Output order is first-seen order during the
// scan; callers wanting a sorted list sort it themselves. Runs in O(N) over
// the total event count.
func BuildContactDirectory(websiteVisits []models.WebsiteVisit, storeVisits []models.StoreVisit) []models.ContactSummary {
	byContact := make(map[string]*models.ContactSummary)
	var order []string

	touch := func(contact string, createdAt time.Time) *models.ContactSummary {
		summary, ok := byContact[contact]
		if !ok {
			summary = &models.ContactSummary{
				Contact:         contact,
				FirstTouchpoint: createdAt,
				LastTouchpoint:  createdAt,
			}
			byContact[contact] = summary
			order = append(order, contact)
		}
		if createdAt.Before(summary.FirstTouchpoint) {
			summary.FirstTouchpoint = createdAt
		}
		if createdAt.After(summary.LastTouchpoint) {
			summary.LastTouchpoint = createdAt
		}
		return summary
	}

	for _, v := range websiteVisits {
		summary := touch(v.OwnerContact, v.CreatedAt)
		summary.WebsiteVisits += visitCountOrOne(v.NumberOfVisits)
	}
	for _, v := range storeVisits {
		summary := touch(v.OwnerContact, v.CreatedAt)
		summary.StoreVisits += visitCountOrOne(v.NumberOfVisits)
	}

	contacts := make([]models.ContactSummary, 0, len(order))
	for _, contact := range order {
		contacts = append(contacts, *byContact[contact])
	}
	return contacts
}

// visitCountOrOne defaults an unset count to a single visit.
func visitCountOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
