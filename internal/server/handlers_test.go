package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func testServer() *Server {
	return &Server{now: func() time.Time { return testNow }}
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestHandleMeTailscaleUser verifies the /api/v1/me endpoint returns the
// identity stored in context by the Tailscale middleware.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestHandleParsePlan verifies the parse endpoint extracts a plan from chat
// text without touching storage when save is not requested.
func TestHandleParsePlan(t *testing.T) {
	s := testServer()
	body := `{"text": "Day 1\n- Bench Press: 4x8\nDay 2\n- Squat: 5x5"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleParsePlan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		ContainsPlan bool `json:"contains_plan"`
		Plan         *struct {
			Name string `json:"name"`
			Days []struct {
				Day       string `json:"day"`
				Exercises []struct {
					Name       string `json:"name"`
					TargetSets int    `json:"target_sets"`
					TargetReps string `json:"target_reps"`
				} `json:"exercises"`
			} `json:"days"`
		} `json:"plan"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if !resp.ContainsPlan {
		t.Error("contains_plan = false, want true")
	}
	if resp.Plan == nil {
		t.Fatal("plan = null, want parsed plan")
	}
	if len(resp.Plan.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(resp.Plan.Days))
	}
	if got := resp.Plan.Days[0].Exercises[0]; got.Name != "Bench Press" || got.TargetSets != 4 || got.TargetReps != "8" {
		t.Errorf("first exercise = %+v, want Bench Press 4x8", got)
	}
}

// TestHandleParsePlanProse verifies plain prose reports contains_plan=false
// with a null plan.
func TestHandleParsePlanProse(t *testing.T) {
	s := testServer()
	body := `{"text": "Great job! Keep your protein high."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleParsePlan(rec, req)

	var resp struct {
		ContainsPlan bool            `json:"contains_plan"`
		Plan         json.RawMessage `json:"plan"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.ContainsPlan {
		t.Error("contains_plan = true, want false")
	}
	if string(resp.Plan) != "null" {
		t.Errorf("plan = %s, want null", resp.Plan)
	}
}

// TestHandleLogSessionValidation verifies boundary validation rejects bad
// payloads before any storage work happens.
func TestHandleLogSessionValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no exercises", `{"day_name": "Push Day", "exercises": []}`},
		{"unnamed exercise", `{"exercises": [{"name": "", "sets": [{"set_number": 1, "reps": 8, "weight": 60}]}]}`},
	}

	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			s.handleLogSession(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestParseTimeRange verifies defaults and both accepted time formats.
func TestParseTimeRange(t *testing.T) {
	// No params: end = now, start = now - span.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	start, end, err := parseTimeRange(req, testNow, defaultHistorySpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !end.Equal(testNow) {
		t.Errorf("end = %v, want now", end)
	}
	if got := end.Sub(start); got != defaultHistorySpan {
		t.Errorf("span = %v, want %v", got, defaultHistorySpan)
	}

	// Date-only params.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=2026-01-01&end=2026-02-01", nil)
	start, end, err = parseTimeRange(req, testNow, defaultHistorySpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 || start.Month() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Month() != 2 {
		t.Errorf("end = %v, want 2026-02-01", end)
	}

	// Garbage.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=whenever", nil)
	if _, _, err := parseTimeRange(req, testNow, defaultHistorySpan); err == nil {
		t.Error("parseTimeRange accepted garbage, want error")
	}
}

// TestParsePositiveInt verifies the query-param helper.
func TestParsePositiveInt(t *testing.T) {
	if n, err := parsePositiveInt("8"); err != nil || n != 8 {
		t.Errorf("parsePositiveInt(8) = %d, %v", n, err)
	}
	for _, bad := range []string{"0", "-3", "abc", ""} {
		if _, err := parsePositiveInt(bad); err == nil {
			t.Errorf("parsePositiveInt(%q) succeeded, want error", bad)
		}
	}
}
