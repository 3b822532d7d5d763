package services

import (
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"
)

var configQueryPattern = regexp.MustCompile("SELECT .* FROM `notification_configs` WHERE event_type = \\?")

func configRow(webhookURL string, enabled bool) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: configQueryPattern,
		columns: []string{"config_id", "event_type", "webhook_url", "secret", "enabled", "create_at"},
		rows: [][]driver.Value{{
			int64(1), "interview_invite", webhookURL, "top-secret", enabled, time.Now(),
		}},
	}
}

func countRow(n int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `email_notifications`"),
		columns: []string{"count"},
		rows:    [][]driver.Value{{n}},
	}
}

func validPayload() EmailEventPayload {
	return EmailEventPayload{
		EventType:      "interview_invite",
		CandidateID:    42,
		RecipientEmail: "candidate@example.com",
		RecipientName:  "Somchai J.",
		Data:           map[string]interface{}{"position": "Backend Engineer"},
	}
}

func TestRelayEmailEventRejectsIncompletePayload(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	status, body := RelayEmailEvent(db, EmailEventPayload{EventType: "interview_invite"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if body["error"] == nil {
		t.Fatal("expected error message in body")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRelayEmailEventUnknownEventType(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: configQueryPattern,
			columns: []string{"config_id", "event_type", "webhook_url", "secret", "enabled", "create_at"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status, _ := RelayEmailEvent(db, validPayload(), nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRelayEmailEventDisabledConfig(t *testing.T) {
	steps := []*queryStep{configRow("http://example.com/hook", false)}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status, body := RelayEmailEvent(db, validPayload(), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if success, _ := body["success"].(bool); success {
		t.Fatal("expected success=false for disabled event type")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRelayEmailEventRateLimited(t *testing.T) {
	steps := []*queryStep{
		configRow("http://example.com/hook", true),
		countRow(RateLimitPerMinute),
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status, body := RelayEmailEvent(db, validPayload(), nil)
	if status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", status)
	}
	if body["limit"] != RateLimitPerMinute {
		t.Fatalf("limit = %v, want %d", body["limit"], RateLimitPerMinute)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRelayEmailEventForwardsWithBearerSecret(t *testing.T) {
	var gotAuth string
	var gotPayload EmailEventPayload
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotPayload)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	steps := []*queryStep{
		configRow(upstream.URL, true),
		countRow(3),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `email_notifications`"),
			result:  scriptedResult{lastInsertID: 10, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `email_notifications` SET .*email_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	sender := uint(5)
	status, body := RelayEmailEvent(db, validPayload(), &sender)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", status, body)
	}
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success=true, body %v", body)
	}
	if body["notification_id"] == "" {
		t.Fatal("expected a notification reference in the response")
	}

	if gotAuth != "Bearer top-secret" {
		t.Fatalf("Authorization = %q, want bearer secret", gotAuth)
	}
	if gotPayload.EventType != "interview_invite" || gotPayload.CandidateID != 42 {
		t.Fatalf("forwarded payload mangled: %+v", gotPayload)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRelayEmailEventUpstreamFailureMarksFailed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	steps := []*queryStep{
		configRow(upstream.URL, true),
		countRow(0),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `email_notifications`"),
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `email_notifications` SET .*email_id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status, body := RelayEmailEvent(db, validPayload(), nil)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if body["error"] != "webhook call failed" {
		t.Fatalf("unexpected body: %v", body)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
