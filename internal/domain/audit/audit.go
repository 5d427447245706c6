package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrportal/internal/platform/querier"
	"hrportal/internal/requestctx"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    string
}

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

// Record appends one audit event. The request id travels in the context so
// callers never thread it by hand.
func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) error {
	var beforeJSON, afterJSON []byte
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		beforeJSON = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, before_json, after_json, request_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, actorID, action, entityType, entityID, beforeJSON, afterJSON, requestctx.GetRequestID(ctx))
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	selectCols := "id, actor_user_id, action, entity_type, entity_id, request_id, created_at"
	if includeDetails {
		selectCols += ", before_json, after_json"
	}
	query, args := buildBaseQuery("SELECT "+selectCols, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if includeDetails {
			err = rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.CreatedAt, &evt.Before, &evt.After)
		} else {
			err = rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.CreatedAt)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(selectClause string, filter Filter) (string, []any) {
	query := selectClause + " FROM audit_events WHERE 1=1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_user_id = $%d", len(args))
	}
	return query, args
}
