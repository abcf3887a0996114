package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"journeytrack/api/analytics"
	"journeytrack/api/models"
	"journeytrack/api/store"
	"journeytrack/api/utils"
)

// AnalyticsHandlers serves the derived views: the conversion funnel, the
// contact directory, per-contact journeys, and stream volume statistics.
type AnalyticsHandlers struct {
	Visits *store.VisitStore
	Stream *store.StreamStore
}

func NewAnalyticsHandlers(visits *store.VisitStore, stream *store.StreamStore) *AnalyticsHandlers {
	return &AnalyticsHandlers{Visits: visits, Stream: stream}
}

// GetFunnel computes the three-stage conversion funnel for an optional
// inclusive date range. The three counts touch disjoint tables, so they run
// concurrently; a failed count degrades to zero instead of failing the whole
// response.
func (h *AnalyticsHandlers) GetFunnel(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if err := utils.ValidateDateRange(startDate, endDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	filter := store.ListFilter{StartDate: startDate, EndDate: endDate}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var counts analytics.FunnelCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.Visits.CountWebsiteVisits(gctx, filter)
		if err != nil {
			log.Printf("Error counting website visits for funnel: %v", err)
			return nil
		}
		counts.WebsiteVisits = n
		return nil
	})
	g.Go(func() error {
		n, err := h.Visits.CountStoreVisits(gctx, filter)
		if err != nil {
			log.Printf("Error counting store visits for funnel: %v", err)
			return nil
		}
		counts.StoreVisits = n
		return nil
	})
	g.Go(func() error {
		n, err := h.Visits.CountSignups(gctx, filter)
		if err != nil {
			log.Printf("Error counting signups for funnel: %v", err)
			return nil
		}
		counts.Signups = n
		return nil
	})
	g.Wait()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": analytics.ComputeFunnel(counts)})
}

// GetContacts answers two queries: with ?contact= it returns that contact's
// journey, without it the full contact directory.
func (h *AnalyticsHandlers) GetContacts(c *gin.Context) {
	contact := c.Query("contact")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if contact != "" {
		h.getJourney(ctx, c, contact)
		return
	}

	websiteVisits, storeVisits := h.fetchAllVisits(ctx)
	contacts := analytics.BuildContactDirectory(websiteVisits, storeVisits)
	if contacts == nil {
		contacts = []models.ContactSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": contacts})
}

func (h *AnalyticsHandlers) getJourney(ctx context.Context, c *gin.Context, contact string) {
	var websiteVisits []models.WebsiteVisit
	var storeVisits []models.StoreVisit

	// The two per-channel fetches are independent; either one failing
	// degrades that channel to empty rather than erroring the journey.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		visits, err := h.Visits.ListWebsiteVisitsByContact(gctx, contact)
		if err != nil {
			log.Printf("Error fetching website visits for contact journey: %v", err)
			return nil
		}
		websiteVisits = visits
		return nil
	})
	g.Go(func() error {
		visits, err := h.Visits.ListStoreVisitsByContact(gctx, contact)
		if err != nil {
			log.Printf("Error fetching store visits for contact journey: %v", err)
			return nil
		}
		storeVisits = visits
		return nil
	})
	g.Wait()

	c.JSON(http.StatusOK, gin.H{"success": true, "data": analytics.BuildJourney(contact, websiteVisits, storeVisits)})
}

func (h *AnalyticsHandlers) fetchAllVisits(ctx context.Context) ([]models.WebsiteVisit, []models.StoreVisit) {
	var websiteVisits []models.WebsiteVisit
	var storeVisits []models.StoreVisit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		visits, err := h.Visits.ListWebsiteVisits(gctx, store.ListFilter{})
		if err != nil {
			log.Printf("Error fetching website visits for contact directory: %v", err)
			return nil
		}
		websiteVisits = visits
		return nil
	})
	g.Go(func() error {
		visits, err := h.Visits.ListStoreVisits(gctx, store.ListFilter{})
		if err != nil {
			log.Printf("Error fetching store visits for contact directory: %v", err)
			return nil
		}
		storeVisits = visits
		return nil
	})
	g.Wait()

	return websiteVisits, storeVisits
}

// GetEventCounts buckets the touchpoint stream by interval, optionally
// filtered to one event type.
func (h *AnalyticsHandlers) GetEventCounts(c *gin.Context) {
	interval := c.Query("interval")
	if interval == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "interval query parameter is required (e.g., 'Day', 'Hour')"})
		return
	}

	eventTypeFilter := c.Query("eventType")

	var start, end time.Time
	var err error

	startParam := c.Query("start")
	if startParam != "" {
		start, err = time.Parse(time.RFC3339, startParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid 'start' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
			return
		}
	} else {
		start = time.Now().UTC().Add(-7 * 24 * time.Hour)
	}

	endParam := c.Query("end")
	if endParam != "" {
		end, err = time.Parse(time.RFC3339, endParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid 'end' timestamp format. Use RFC3339 (e.g., 2006-01-02T15:04:05Z)"})
			return
		}
	} else {
		end = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := h.Stream.GetEventCountsOverTime(ctx, interval, start, end, eventTypeFilter)
	if err != nil {
		log.Printf("Error getting event counts over time: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve event statistics"})
		return
	}
	if results == nil {
		results = []models.StreamCountByTime{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
}
