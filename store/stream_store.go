package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"journeytrack/api/database"
	"journeytrack/api/models"
	"journeytrack/api/utils"
)

// StreamStore appends every accepted touchpoint ingestion to an append-only
// ClickHouse table and answers volume-over-time queries from it. Writes are
// best-effort from the caller's point of view; the relational collections
// remain the source of truth.
type StreamStore struct {
	DB *database.ClickHouseClient
}

func NewStreamStore(chClient *database.ClickHouseClient) *StreamStore {
	return &StreamStore{
		DB: chClient,
	}
}

func (s *StreamStore) AppendEvents(ctx context.Context, events []models.StreamEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column names and order must match the touchpoint_stream table schema.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO touchpoint_stream (
			event_id, event_type, contact, location, timestamp
		) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		err := batch.Append(
			event.EventID,
			event.EventType,
			event.Contact,
			event.Location,
			event.Timestamp,
		)
		if err != nil {
			log.Printf("Error appending event to batch (EventID: %s): %v", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	return nil
}

// GetEventCountsOverTime buckets stream rows by the given interval, optionally
// restricted to one event type.
func (s *StreamStore) GetEventCountsOverTime(ctx context.Context, interval string, start, end time.Time, eventTypeFilter string) ([]models.StreamCountByTime, error) {
	var args []interface{}
	args = append(args, start, end)

	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	selectCols := fmt.Sprintf("toStartOf%s(timestamp) as time_bucket, count() as total_events", interval)
	groupByCols := "time_bucket"
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	orderByCols := "time_bucket ASC"
	isFilteringByType := eventTypeFilter != ""

	if isFilteringByType {
		selectCols += ", event_type"
		groupByCols += ", event_type"
		whereClause += " AND event_type = ?"
		args = append(args, eventTypeFilter)
		orderByCols += ", event_type ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM touchpoint_stream
		%s
		GROUP BY %s
		ORDER BY %s
	`, selectCols, whereClause, groupByCols, orderByCols)

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts over time: %w", err)
	}
	defer rows.Close()

	var results []models.StreamCountByTime
	for rows.Next() {
		var (
			timeBucket    time.Time
			count         uint64
			eventTypeDB   string
			currentResult models.StreamCountByTime
		)

		if isFilteringByType {
			if err := rows.Scan(&timeBucket, &count, &eventTypeDB); err != nil {
				log.Printf("Error scanning row for event counts over time (with type filter): %v", err)
				continue
			}
			currentResult.EventType = &eventTypeDB
		} else {
			if err := rows.Scan(&timeBucket, &count); err != nil {
				log.Printf("Error scanning row for event counts over time (no type filter): %v", err)
				continue
			}
		}

		currentResult.Time = timeBucket
		currentResult.Count = count
		results = append(results, currentResult)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during event counts over time query: %w", err)
	}

	return results, nil
}
