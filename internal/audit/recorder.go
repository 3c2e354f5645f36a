// Package audit is the cross-cutting collaborator every privileged write
// path records through. One Record call per mutation, at the same call site
// as the commit; a failed audit write fails the enclosing operation.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/repository"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

const (
	// DefaultLimit applies when a query does not bound itself.
	DefaultLimit = 50
	// MaxLimit is the hard page-size cap; larger requests are clamped.
	MaxLimit = 100
)

// Recorder appends and queries audit log entries.
type Recorder struct {
	logs repository.AuditLogRepository
}

func NewRecorder(logs repository.AuditLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Record appends one entry for a privileged mutation. payload, when non-nil,
// is serialized to JSON. Auditability is a correctness property here: an
// error is returned as model.ErrAuditWrite so the caller surfaces a server
// error instead of completing unaudited.
func (r *Recorder) Record(ctx context.Context, actorUserID uint, action, target string, payload interface{}) error {
	entry := &model.AuditLog{
		ActorUserID: actorUserID,
		Action:      action,
		Target:      target,
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload for %s: %w", action, model.ErrAuditWrite)
		}
		entry.Payload = string(raw)
	}

	if err := r.logs.Append(ctx, entry); err != nil {
		return fmt.Errorf("append %s: %v: %w", action, err, model.ErrAuditWrite)
	}
	prometheus.RecordAuditEntry(action)
	return nil
}

// Filter narrows a Query. An Action ending in "." or "*" matches as a
// prefix; otherwise exactly. The time range is half-open: [From, To).
type Filter struct {
	Action      string
	ActorUserID *uint
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// Query returns matching entries newest-first, with the page size clamped to
// MaxLimit.
func (r *Recorder) Query(ctx context.Context, f Filter) ([]model.AuditLog, error) {
	storeFilter := model.AuditFilter{
		ActorUserID: f.ActorUserID,
		From:        f.From,
		To:          f.To,
		Limit:       normalizeLimit(f.Limit),
		Offset:      f.Offset,
	}
	if f.Offset < 0 {
		storeFilter.Offset = 0
	}

	switch {
	case strings.HasSuffix(f.Action, "*"):
		storeFilter.Action = strings.TrimSuffix(f.Action, "*")
		storeFilter.ActionPrefix = true
	case strings.HasSuffix(f.Action, "."):
		storeFilter.Action = f.Action
		storeFilter.ActionPrefix = true
	default:
		storeFilter.Action = f.Action
	}

	return r.logs.Query(ctx, storeFilter)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
