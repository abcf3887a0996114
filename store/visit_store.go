package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"journeytrack/api/models"
)

// ErrNotFound reports a single-row lookup that matched nothing. Handlers
// translate it to a 404; it is distinct from a storage failure.
var ErrNotFound = errors.New("record not found")

const dateLayout = "2006-01-02"

// VisitStore is the adapter over the three touchpoint collections. It holds
// an injected *sql.DB; nothing in this package reaches for globals.
type VisitStore struct {
	db *sql.DB
}

func NewVisitStore(db *sql.DB) *VisitStore {
	return &VisitStore{db: db}
}

// ListFilter narrows list queries. Empty fields mean unbounded / no filter.
// StartDate and EndDate are inclusive calendar dates (YYYY-MM-DD) compared
// against the row's date column; Location is a case-insensitive substring.
type ListFilter struct {
	StartDate string
	EndDate   string
	Location  string
}

func (f ListFilter) whereClause(args *[]interface{}) string {
	clause := ""
	appendCond := func(cond string, arg interface{}) {
		*args = append(*args, arg)
		cond = fmt.Sprintf(cond, len(*args))
		if clause == "" {
			clause = " WHERE " + cond
		} else {
			clause += " AND " + cond
		}
	}
	if f.StartDate != "" {
		appendCond("date >= $%d", f.StartDate)
	}
	if f.EndDate != "" {
		appendCond("date <= $%d", f.EndDate)
	}
	if f.Location != "" {
		appendCond("location ILIKE '%%' || $%d || '%%'", f.Location)
	}
	return clause
}

// --- website visits ---

const websiteVisitCols = "id, ip, owner_contact, number_of_visits, page_visits, website_duration, location, time, date, created_at"

func scanWebsiteVisit(row interface{ Scan(...interface{}) error }) (models.WebsiteVisit, error) {
	var v models.WebsiteVisit
	var date time.Time
	err := row.Scan(&v.ID, &v.IP, &v.OwnerContact, &v.NumberOfVisits, &v.PageVisits,
		&v.WebsiteDuration, &v.Location, &v.Time, &date, &v.CreatedAt)
	if err != nil {
		return models.WebsiteVisit{}, err
	}
	v.Date = date.Format(dateLayout)
	return v, nil
}

func (s *VisitStore) ListWebsiteVisits(ctx context.Context, filter ListFilter) ([]models.WebsiteVisit, error) {
	var args []interface{}
	query := fmt.Sprintf(`SELECT %s FROM website_visits%s ORDER BY created_at DESC`,
		websiteVisitCols, filter.whereClause(&args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query website visits: %w", err)
	}
	defer rows.Close()

	var visits []models.WebsiteVisit
	for rows.Next() {
		v, err := scanWebsiteVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan website visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing website visits: %w", err)
	}
	return visits, nil
}

// ListWebsiteVisitsByContact returns a contact's website visits in arrival
// order (created_at ascending), as the journey merge expects.
func (s *VisitStore) ListWebsiteVisitsByContact(ctx context.Context, contact string) ([]models.WebsiteVisit, error) {
	query := fmt.Sprintf(`SELECT %s FROM website_visits WHERE owner_contact = $1 ORDER BY created_at ASC`, websiteVisitCols)

	rows, err := s.db.QueryContext(ctx, query, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to query website visits for contact: %w", err)
	}
	defer rows.Close()

	var visits []models.WebsiteVisit
	for rows.Next() {
		v, err := scanWebsiteVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan website visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing website visits for contact: %w", err)
	}
	return visits, nil
}

func (s *VisitStore) GetWebsiteVisit(ctx context.Context, id string) (*models.WebsiteVisit, error) {
	query := fmt.Sprintf(`SELECT %s FROM website_visits WHERE id = $1`, websiteVisitCols)
	v, err := scanWebsiteVisit(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get website visit: %w", err)
	}
	return &v, nil
}

// UpsertWebsiteVisit inserts a website visit, or accumulates into the row
// sharing the same (ip, date): the visit count is summed while page visits,
// duration and time take the incoming values. The whole rule runs as one
// statement so concurrent ingestions for the same key cannot lose an
// increment. The returned bool is true when a new row was created.
func (s *VisitStore) UpsertWebsiteVisit(ctx context.Context, req models.WebsiteVisitRequest) (*models.WebsiteVisit, bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO website_visits (ip, owner_contact, number_of_visits, page_visits, website_duration, location, time, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ip, date) DO UPDATE SET
			number_of_visits = website_visits.number_of_visits + EXCLUDED.number_of_visits,
			page_visits      = EXCLUDED.page_visits,
			website_duration = EXCLUDED.website_duration,
			time             = EXCLUDED.time
		RETURNING %s, (xmax = 0) AS inserted
	`, websiteVisitCols)

	var v models.WebsiteVisit
	var date time.Time
	var inserted bool
	err := s.db.QueryRowContext(ctx, query,
		req.IP, req.OwnerContact, req.NumberOfVisits, req.PageVisits,
		req.WebsiteDuration, req.Location, req.Time, req.Date,
	).Scan(&v.ID, &v.IP, &v.OwnerContact, &v.NumberOfVisits, &v.PageVisits,
		&v.WebsiteDuration, &v.Location, &v.Time, &date, &v.CreatedAt, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert website visit: %w", err)
	}
	v.Date = date.Format(dateLayout)
	return &v, inserted, nil
}

func (s *VisitStore) UpdateWebsiteVisit(ctx context.Context, id string, req models.WebsiteVisitRequest) (*models.WebsiteVisit, error) {
	query := fmt.Sprintf(`
		UPDATE website_visits
		SET ip = $1, owner_contact = $2, number_of_visits = $3, page_visits = $4,
			website_duration = $5, location = $6, time = $7, date = $8
		WHERE id = $9
		RETURNING %s
	`, websiteVisitCols)

	v, err := scanWebsiteVisit(s.db.QueryRowContext(ctx, query,
		req.IP, req.OwnerContact, req.NumberOfVisits, req.PageVisits,
		req.WebsiteDuration, req.Location, req.Time, req.Date, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update website visit: %w", err)
	}
	return &v, nil
}

func (s *VisitStore) DeleteWebsiteVisit(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "website_visits", id)
}

func (s *VisitStore) CountWebsiteVisits(ctx context.Context, filter ListFilter) (int, error) {
	return s.countRows(ctx, "website_visits", filter)
}

// --- store visits ---

const storeVisitCols = "id, owner_contact, number_of_visits, location, time, date, created_at"

func scanStoreVisit(row interface{ Scan(...interface{}) error }) (models.StoreVisit, error) {
	var v models.StoreVisit
	var date time.Time
	err := row.Scan(&v.ID, &v.OwnerContact, &v.NumberOfVisits, &v.Location, &v.Time, &date, &v.CreatedAt)
	if err != nil {
		return models.StoreVisit{}, err
	}
	v.Date = date.Format(dateLayout)
	return v, nil
}

func (s *VisitStore) ListStoreVisits(ctx context.Context, filter ListFilter) ([]models.StoreVisit, error) {
	var args []interface{}
	query := fmt.Sprintf(`SELECT %s FROM store_visits%s ORDER BY created_at DESC`,
		storeVisitCols, filter.whereClause(&args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query store visits: %w", err)
	}
	defer rows.Close()

	var visits []models.StoreVisit
	for rows.Next() {
		v, err := scanStoreVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing store visits: %w", err)
	}
	return visits, nil
}

func (s *VisitStore) ListStoreVisitsByContact(ctx context.Context, contact string) ([]models.StoreVisit, error) {
	query := fmt.Sprintf(`SELECT %s FROM store_visits WHERE owner_contact = $1 ORDER BY created_at ASC`, storeVisitCols)

	rows, err := s.db.QueryContext(ctx, query, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to query store visits for contact: %w", err)
	}
	defer rows.Close()

	var visits []models.StoreVisit
	for rows.Next() {
		v, err := scanStoreVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing store visits for contact: %w", err)
	}
	return visits, nil
}

func (s *VisitStore) GetStoreVisit(ctx context.Context, id string) (*models.StoreVisit, error) {
	query := fmt.Sprintf(`SELECT %s FROM store_visits WHERE id = $1`, storeVisitCols)
	v, err := scanStoreVisit(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get store visit: %w", err)
	}
	return &v, nil
}

// CreateStoreVisit always inserts a new row; store visits have no merge rule.
func (s *VisitStore) CreateStoreVisit(ctx context.Context, req models.StoreVisitRequest) (*models.StoreVisit, error) {
	query := fmt.Sprintf(`
		INSERT INTO store_visits (owner_contact, number_of_visits, location, time, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, storeVisitCols)

	v, err := scanStoreVisit(s.db.QueryRowContext(ctx, query,
		req.OwnerContact, req.NumberOfVisits, req.Location, req.Time, req.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to create store visit: %w", err)
	}
	return &v, nil
}

func (s *VisitStore) UpdateStoreVisit(ctx context.Context, id string, req models.StoreVisitRequest) (*models.StoreVisit, error) {
	query := fmt.Sprintf(`
		UPDATE store_visits
		SET owner_contact = $1, number_of_visits = $2, location = $3, time = $4, date = $5
		WHERE id = $6
		RETURNING %s
	`, storeVisitCols)

	v, err := scanStoreVisit(s.db.QueryRowContext(ctx, query,
		req.OwnerContact, req.NumberOfVisits, req.Location, req.Time, req.Date, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update store visit: %w", err)
	}
	return &v, nil
}

func (s *VisitStore) DeleteStoreVisit(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "store_visits", id)
}

func (s *VisitStore) CountStoreVisits(ctx context.Context, filter ListFilter) (int, error) {
	return s.countRows(ctx, "store_visits", filter)
}

// --- signups ---

const signupCols = "id, username, email, location, time, date, created_at"

func scanSignup(row interface{ Scan(...interface{}) error }) (models.SignupEvent, error) {
	var e models.SignupEvent
	var date time.Time
	err := row.Scan(&e.ID, &e.Username, &e.Email, &e.Location, &e.Time, &date, &e.CreatedAt)
	if err != nil {
		return models.SignupEvent{}, err
	}
	e.Date = date.Format(dateLayout)
	return e, nil
}

func (s *VisitStore) ListSignups(ctx context.Context, filter ListFilter) ([]models.SignupEvent, error) {
	var args []interface{}
	query := fmt.Sprintf(`SELECT %s FROM login_signup%s ORDER BY created_at DESC`,
		signupCols, filter.whereClause(&args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signup events: %w", err)
	}
	defer rows.Close()

	var events []models.SignupEvent
	for rows.Next() {
		e, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signup event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error listing signup events: %w", err)
	}
	return events, nil
}

func (s *VisitStore) GetSignup(ctx context.Context, id string) (*models.SignupEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM login_signup WHERE id = $1`, signupCols)
	e, err := scanSignup(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get signup event: %w", err)
	}
	return &e, nil
}

func (s *VisitStore) CreateSignup(ctx context.Context, req models.SignupEventRequest) (*models.SignupEvent, error) {
	query := fmt.Sprintf(`
		INSERT INTO login_signup (username, email, location, time, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, signupCols)

	e, err := scanSignup(s.db.QueryRowContext(ctx, query,
		req.Username, req.Email, req.Location, req.Time, req.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to create signup event: %w", err)
	}
	return &e, nil
}

func (s *VisitStore) UpdateSignup(ctx context.Context, id string, req models.SignupEventRequest) (*models.SignupEvent, error) {
	query := fmt.Sprintf(`
		UPDATE login_signup
		SET username = $1, email = $2, location = $3, time = $4, date = $5
		WHERE id = $6
		RETURNING %s
	`, signupCols)

	e, err := scanSignup(s.db.QueryRowContext(ctx, query,
		req.Username, req.Email, req.Location, req.Time, req.Date, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update signup event: %w", err)
	}
	return &e, nil
}

func (s *VisitStore) DeleteSignup(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "login_signup", id)
}

func (s *VisitStore) CountSignups(ctx context.Context, filter ListFilter) (int, error) {
	return s.countRows(ctx, "login_signup", filter)
}

// --- shared helpers ---

func (s *VisitStore) countRows(ctx context.Context, table string, filter ListFilter) (int, error) {
	var args []interface{}
	query := fmt.Sprintf(`SELECT count(*) FROM %s%s`, table, filter.whereClause(&args))

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (s *VisitStore) deleteByID(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result for %s: %w", table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
