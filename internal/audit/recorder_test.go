package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

type fakeAuditRepo struct {
	entries    []model.AuditLog
	lastFilter model.AuditFilter
	appendErr  error
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *model.AuditLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) Query(_ context.Context, filter model.AuditFilter) ([]model.AuditLog, error) {
	f.lastFilter = filter
	if filter.Action == "" {
		return f.entries, nil
	}
	var out []model.AuditLog
	for _, e := range f.entries {
		if filter.ActionPrefix && strings.HasPrefix(e.Action, filter.Action) {
			out = append(out, e)
		} else if !filter.ActionPrefix && e.Action == filter.Action {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestRecordAppendsEntryWithPayload(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := NewRecorder(repo)

	err := rec.Record(context.Background(), 7, "config.update", "config:retention",
		map[string]string{"key": "retention", "value": "90d"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.ActorUserID != 7 || entry.Action != "config.update" {
		t.Fatalf("entry = %+v", entry)
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["key"] != "retention" {
		t.Errorf("payload = %v", payload)
	}
}

func TestRecordFailureEscalates(t *testing.T) {
	repo := &fakeAuditRepo{appendErr: errors.New("disk full")}
	rec := NewRecorder(repo)

	err := rec.Record(context.Background(), 7, "tenant.create", "tenant:1", nil)
	if !errors.Is(err, model.ErrAuditWrite) {
		t.Fatalf("err = %v, want ErrAuditWrite", err)
	}
}

func TestRecordThenQueryByAction(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := NewRecorder(repo)

	ctx := context.Background()
	if err := rec.Record(ctx, 7, "config.update", "config:retention", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Record(ctx, 7, "tenant.create", "tenant:1", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	logs, err := rec.Query(ctx, Filter{Action: "config.update"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "config.update" {
		t.Fatalf("logs = %+v, want exactly the config.update entry", logs)
	}

	logs, err = rec.Query(ctx, Filter{Action: "tenant.*"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "tenant.create" {
		t.Fatalf("logs = %+v, want exactly the tenant.create entry", logs)
	}
}

func TestQueryLimitNormalization(t *testing.T) {
	cases := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero defaults", 0, DefaultLimit},
		{"negative defaults", -5, DefaultLimit},
		{"within bounds", 25, 25},
		{"clamped to max", 10_000, MaxLimit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeAuditRepo{}
			rec := NewRecorder(repo)
			if _, err := rec.Query(context.Background(), Filter{Limit: tc.limit}); err != nil {
				t.Fatalf("Query: %v", err)
			}
			if repo.lastFilter.Limit != tc.want {
				t.Fatalf("limit = %d, want %d", repo.lastFilter.Limit, tc.want)
			}
		})
	}
}

func TestQueryActionPrefixDetection(t *testing.T) {
	cases := []struct {
		name       string
		action     string
		wantAction string
		wantPrefix bool
	}{
		{"exact match", "config.update", "config.update", false},
		{"trailing dot prefix", "tenant.", "tenant.", true},
		{"trailing star prefix", "tenant.*", "tenant.", true},
		{"empty matches all", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeAuditRepo{}
			rec := NewRecorder(repo)
			if _, err := rec.Query(context.Background(), Filter{Action: tc.action}); err != nil {
				t.Fatalf("Query: %v", err)
			}
			if repo.lastFilter.Action != tc.wantAction || repo.lastFilter.ActionPrefix != tc.wantPrefix {
				t.Fatalf("filter = %+v, want action %q prefix %v",
					repo.lastFilter, tc.wantAction, tc.wantPrefix)
			}
		})
	}
}
