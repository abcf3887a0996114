package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"journeytrack/api/models"
	"journeytrack/api/store"
	"journeytrack/api/utils"
)

// VisitHandlers serves the three touchpoint collections: website visits,
// store visits and login/signup events.
type VisitHandlers struct {
	Visits *store.VisitStore
	Stream *store.StreamStore
}

func NewVisitHandlers(visits *store.VisitStore, stream *store.StreamStore) *VisitHandlers {
	return &VisitHandlers{Visits: visits, Stream: stream}
}

func listFilterFromQuery(c *gin.Context) (store.ListFilter, bool) {
	filter := store.ListFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Location:  c.Query("location"),
	}
	if err := utils.ValidateDateRange(filter.StartDate, filter.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return store.ListFilter{}, false
	}
	return filter, true
}

// appendToStream mirrors an accepted ingestion into the ClickHouse touchpoint
// stream. Best-effort: a stream failure never fails the caller's request.
func (h *VisitHandlers) appendToStream(eventType, contact, location string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := models.StreamEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Contact:   contact,
		Location:  location,
		Timestamp: time.Now().UTC(),
	}
	if err := h.Stream.AppendEvents(ctx, []models.StreamEvent{event}); err != nil {
		log.Printf("Error appending %s event to touchpoint stream: %v", eventType, err)
	}
}

// --- website visits ---

func (h *VisitHandlers) ListWebsiteVisits(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visits, err := h.Visits.ListWebsiteVisits(ctx, filter)
	if err != nil {
		log.Printf("Error fetching website visits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch website visits"})
		return
	}
	if visits == nil {
		visits = []models.WebsiteVisit{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visits})
}

// CreateWebsiteVisit ingests a website visit. A record sharing (ip, date)
// with an existing row is accumulated into it rather than duplicated; the
// response distinguishes the two outcomes (201 created, 200 updated).
func (h *VisitHandlers) CreateWebsiteVisit(c *gin.Context) {
	var req models.WebsiteVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateWebsiteVisit(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, created, err := h.Visits.UpsertWebsiteVisit(ctx, req)
	if err != nil {
		log.Printf("Error upserting website visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create website visit"})
		return
	}

	h.appendToStream(models.TouchTypeWebsite, visit.OwnerContact, visit.Location)

	if created {
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": visit, "message": "Website visit created successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": visit, "message": "Website visit updated"})
}

func (h *VisitHandlers) GetWebsiteVisit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, err := h.Visits.GetWebsiteVisit(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Website visit not found"})
			return
		}
		log.Printf("Error fetching website visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch website visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visit})
}

func (h *VisitHandlers) UpdateWebsiteVisit(c *gin.Context) {
	var req models.WebsiteVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateWebsiteVisit(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, err := h.Visits.UpdateWebsiteVisit(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Website visit not found"})
			return
		}
		log.Printf("Error updating website visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update website visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visit, "message": "Website visit updated successfully"})
}

func (h *VisitHandlers) DeleteWebsiteVisit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Visits.DeleteWebsiteVisit(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Website visit not found"})
			return
		}
		log.Printf("Error deleting website visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete website visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Website visit deleted successfully"})
}

// --- store visits ---

func (h *VisitHandlers) ListStoreVisits(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visits, err := h.Visits.ListStoreVisits(ctx, filter)
	if err != nil {
		log.Printf("Error fetching store visits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch store visits"})
		return
	}
	if visits == nil {
		visits = []models.StoreVisit{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visits})
}

// CreateStoreVisit ingests a store visit. Store visits have no merge rule;
// every accepted record becomes a new row.
func (h *VisitHandlers) CreateStoreVisit(c *gin.Context) {
	var req models.StoreVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateStoreVisit(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, err := h.Visits.CreateStoreVisit(ctx, req)
	if err != nil {
		log.Printf("Error creating store visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create store visit"})
		return
	}

	h.appendToStream(models.TouchTypeStore, visit.OwnerContact, visit.Location)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": visit, "message": "Store visit created successfully"})
}

func (h *VisitHandlers) GetStoreVisit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, err := h.Visits.GetStoreVisit(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Store visit not found"})
			return
		}
		log.Printf("Error fetching store visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch store visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visit})
}

func (h *VisitHandlers) UpdateStoreVisit(c *gin.Context) {
	var req models.StoreVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateStoreVisit(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visit, err := h.Visits.UpdateStoreVisit(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Store visit not found"})
			return
		}
		log.Printf("Error updating store visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update store visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": visit, "message": "Store visit updated successfully"})
}

func (h *VisitHandlers) DeleteStoreVisit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Visits.DeleteStoreVisit(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Store visit not found"})
			return
		}
		log.Printf("Error deleting store visit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete store visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store visit deleted successfully"})
}

// --- login/signup events ---

func (h *VisitHandlers) ListSignups(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	events, err := h.Visits.ListSignups(ctx, filter)
	if err != nil {
		log.Printf("Error fetching signup events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch login/signup events"})
		return
	}
	if events == nil {
		events = []models.SignupEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": events})
}

func (h *VisitHandlers) CreateSignup(c *gin.Context) {
	var req models.SignupEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateSignupEvent(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	event, err := h.Visits.CreateSignup(ctx, req)
	if err != nil {
		log.Printf("Error creating signup event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create login/signup event"})
		return
	}

	h.appendToStream("signup", event.Email, event.Location)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": event, "message": "Login/signup event created successfully"})
}

func (h *VisitHandlers) GetSignup(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	event, err := h.Visits.GetSignup(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Login/signup event not found"})
			return
		}
		log.Printf("Error fetching signup event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch login/signup event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": event})
}

func (h *VisitHandlers) UpdateSignup(c *gin.Context) {
	var req models.SignupEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if validationErrors := utils.ValidateSignupEvent(req); len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(validationErrors, ", ")})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	event, err := h.Visits.UpdateSignup(ctx, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Login/signup event not found"})
			return
		}
		log.Printf("Error updating signup event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update login/signup event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": event, "message": "Login/signup event updated successfully"})
}

func (h *VisitHandlers) DeleteSignup(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Visits.DeleteSignup(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Login/signup event not found"})
			return
		}
		log.Printf("Error deleting signup event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete login/signup event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login/signup event deleted successfully"})
}

// --- CSV export ---

// ExportWorkflow streams one collection as a CSV attachment. The workflow
// path segment picks the collection: website-visits, store-visits or
// login-signup.
func (h *VisitHandlers) ExportWorkflow(c *gin.Context) {
	workflow := c.Param("workflow")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var headers []string
	var rows [][]string

	switch workflow {
	case "website-visits":
		visits, err := h.Visits.ListWebsiteVisits(ctx, store.ListFilter{})
		if err != nil {
			log.Printf("Error fetching website visits for export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch data"})
			return
		}
		headers, rows = utils.WebsiteVisitCSV(visits)
	case "store-visits":
		visits, err := h.Visits.ListStoreVisits(ctx, store.ListFilter{})
		if err != nil {
			log.Printf("Error fetching store visits for export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch data"})
			return
		}
		headers, rows = utils.StoreVisitCSV(visits)
	case "login-signup":
		events, err := h.Visits.ListSignups(ctx, store.ListFilter{})
		if err != nil {
			log.Printf("Error fetching signup events for export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch data"})
			return
		}
		headers, rows = utils.SignupEventCSV(events)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid workflow"})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No data to export"})
		return
	}

	csvContent, err := utils.RenderCSV(headers, rows)
	if err != nil {
		log.Printf("Error rendering CSV for %s: %v", workflow, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to generate CSV"})
		return
	}

	filename := fmt.Sprintf("%s-export-%s.csv", workflow, time.Now().UTC().Format(time.RFC3339))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", []byte(csvContent))
}
