package eventlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/compactconnect/notify/pkg/report"
)

// Event type discriminators stored in data_events.event_type. The ingest
// pipeline writes one row per event; this package only ever reads them.
const (
	eventTypeIngestFailure   = "license.ingest-failure"
	eventTypeValidationError = "license.validation-error"
	eventTypeIngestSuccess   = "license.ingest-success"
)

// Store reads license-data events for a compact, jurisdiction and time
// window. It is safe for concurrent use; all methods are read-only.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates an event-log reader over an established pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ingestFailurePayload is the JSONB shape written by the ingest pipeline for
// batch-level failures.
type ingestFailurePayload struct {
	Errors []string `json:"errors"`
}

// validationErrorPayload is the JSONB shape written for row-level failures.
type validationErrorPayload struct {
	RecordNumber int                 `json:"recordNumber"`
	Errors       map[string][]string `json:"errors"`
	ValidData    map[string]any      `json:"validData"`
}

// IngestFailures returns batch-level failures inside the window, ordered by
// event time ascending.
func (s *Store) IngestFailures(ctx context.Context, compact, jurisdiction string, w report.Window) ([]report.IngestFailureRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT event_time, payload
		FROM data_events
		WHERE compact = $1 AND jurisdiction = $2 AND event_type = $3
		  AND event_time >= $4 AND event_time < $5
		ORDER BY event_time ASC`,
		compact, jurisdiction, eventTypeIngestFailure, w.Start, w.End)
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryEvents, err)
	}
	defer rows.Close()

	var records []report.IngestFailureRecord
	for rows.Next() {
		var eventTime time.Time
		var payload []byte
		if err := rows.Scan(&eventTime, &payload); err != nil {
			return nil, errors.Join(ErrFailedToQueryEvents, err)
		}
		rec, err := decodeIngestFailure(compact, jurisdiction, eventTime, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryEvents, err)
	}
	return records, nil
}

// ValidationErrors returns row-level failures inside the window. Order is by
// event time for read stability; the report assembler applies the
// user-facing (record number, event time) ordering itself.
func (s *Store) ValidationErrors(ctx context.Context, compact, jurisdiction string, w report.Window) ([]report.ValidationErrorRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT event_time, payload
		FROM data_events
		WHERE compact = $1 AND jurisdiction = $2 AND event_type = $3
		  AND event_time >= $4 AND event_time < $5
		ORDER BY event_time ASC`,
		compact, jurisdiction, eventTypeValidationError, w.Start, w.End)
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryEvents, err)
	}
	defer rows.Close()

	var records []report.ValidationErrorRecord
	for rows.Next() {
		var eventTime time.Time
		var payload []byte
		if err := rows.Scan(&eventTime, &payload); err != nil {
			return nil, errors.Join(ErrFailedToQueryEvents, err)
		}
		rec, err := decodeValidationError(compact, jurisdiction, eventTime, payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrFailedToQueryEvents, err)
	}
	return records, nil
}

// SuccessfulIngestCount returns how many uploads were fully processed inside
// the window.
func (s *Store) SuccessfulIngestCount(ctx context.Context, compact, jurisdiction string, w report.Window) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM data_events
		WHERE compact = $1 AND jurisdiction = $2 AND event_type = $3
		  AND event_time >= $4 AND event_time < $5`,
		compact, jurisdiction, eventTypeIngestSuccess, w.Start, w.End).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrFailedToQueryEvents, err)
	}
	return count, nil
}

func decodeIngestFailure(compact, jurisdiction string, eventTime time.Time, payload []byte) (report.IngestFailureRecord, error) {
	var p ingestFailurePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return report.IngestFailureRecord{}, fmt.Errorf("%w: ingest failure at %s: %w", ErrMalformedEvent, eventTime, err)
	}
	return report.IngestFailureRecord{
		Compact:      compact,
		Jurisdiction: jurisdiction,
		EventTime:    eventTime,
		Errors:       p.Errors,
	}, nil
}

func decodeValidationError(compact, jurisdiction string, eventTime time.Time, payload []byte) (report.ValidationErrorRecord, error) {
	var p validationErrorPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return report.ValidationErrorRecord{}, fmt.Errorf("%w: validation error at %s: %w", ErrMalformedEvent, eventTime, err)
	}
	return report.ValidationErrorRecord{
		Compact:      compact,
		Jurisdiction: jurisdiction,
		EventTime:    eventTime,
		RecordNumber: p.RecordNumber,
		Errors:       p.Errors,
		ValidData:    p.ValidData,
	}, nil
}
