package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clearday/clearday/internal/config"
	"github.com/clearday/clearday/internal/storage"
)

func newTestServer(st storage.Store, now string) http.Handler {
	s := New(st, &config.Config{})
	if now != "" {
		fixed, err := time.Parse(time.RFC3339, now)
		if err != nil {
			panic(err)
		}
		s.now = func() time.Time { return fixed }
	}
	return s.Router()
}

func mockRequest(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func TestPutProfile_Valid(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodPut, "/users/u1/profile", map[string]string{
		"start_date": "2024-01-01",
		"timezone":   "America/New_York",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}
}

func TestPutProfile_MissingStartDate(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodPut, "/users/u1/profile", map[string]string{
		"timezone": "America/New_York",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestPutProfile_BadTimezone(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodPut, "/users/u1/profile", map[string]string{
		"start_date": "2024-01-01",
		"timezone":   "Not/AZone",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodGet, "/users/u1/profile", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d want 404", rr.Code)
	}
}

func TestGetStreak_NoResetEvent(t *testing.T) {
	h := newTestServer(newMemStore(), "2024-04-10T12:00:00Z")

	rr := mockRequest(h, http.MethodPut, "/users/u1/profile", map[string]string{
		"start_date": "2024-01-01",
		"timezone":   "America/New_York",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("put profile: got %d want 200", rr.Code)
	}

	rr = mockRequest(h, http.MethodGet, "/users/u1/streak", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200: %s", rr.Code, rr.Body.String())
	}

	var resp StreakResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.JourneyDays != 100 || resp.CurrentStreakDays != 100 {
		t.Fatalf("got journey=%d current=%d, want 100 and 100",
			resp.JourneyDays, resp.CurrentStreakDays)
	}
	if resp.HasResetEvents {
		t.Fatal("expected has_reset_events false")
	}
}

func TestGetStreak_WithResetEvent(t *testing.T) {
	h := newTestServer(newMemStore(), "2024-04-10T19:00:00Z")

	rr := mockRequest(h, http.MethodPut, "/users/u1/profile", map[string]string{
		"start_date": "2024-01-01",
		"timezone":   "America/New_York",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("put profile: got %d want 200", rr.Code)
	}
	rr = mockRequest(h, http.MethodPost, "/users/u1/resets", map[string]string{
		"occurred_on":  "2024-03-01",
		"restart_date": "2024-03-02",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("post reset: got %d want 201: %s", rr.Code, rr.Body.String())
	}

	rr = mockRequest(h, http.MethodGet, "/users/u1/streak", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}

	var resp StreakResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.CurrentStreakDays != 39 {
		t.Fatalf("got current=%d, want 39", resp.CurrentStreakDays)
	}
	if resp.JourneyDays != 100 {
		t.Fatalf("got journey=%d, want 100", resp.JourneyDays)
	}
	if !resp.HasResetEvents {
		t.Fatal("expected has_reset_events true")
	}
}

func TestGetStreak_NoProfile(t *testing.T) {
	h := newTestServer(newMemStore(), "2024-04-10T12:00:00Z")

	rr := mockRequest(h, http.MethodGet, "/users/u1/streak", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}

	var resp StreakResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.JourneyDays != 0 || resp.CurrentStreakDays != 0 {
		t.Fatalf("got journey=%d current=%d, want zeros", resp.JourneyDays, resp.CurrentStreakDays)
	}
}

func TestLogReset_DefaultsRestartDate(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodPost, "/users/u1/resets", map[string]string{
		"occurred_on": "2024-03-01",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d want 201: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		RestartDate string `json:"restart_date"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.RestartDate != "2024-03-02" {
		t.Fatalf("got restart_date=%s, want 2024-03-02", resp.RestartDate)
	}
}

func TestLogReset_RestartBeforeOccurred(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodPost, "/users/u1/resets", map[string]string{
		"occurred_on":  "2024-03-10",
		"restart_date": "2024-03-01",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestLogReset_InvalidJSON(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	req := httptest.NewRequest(http.MethodPost, "/users/u1/resets", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d want 400", rr.Code)
	}
}

func TestListResets_Empty(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodGet, "/users/u1/resets", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}

	var resp ResetListResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(resp.Resets) != 0 {
		t.Fatalf("len=%d want 0", len(resp.Resets))
	}
}

func TestVersion(t *testing.T) {
	h := newTestServer(newMemStore(), "")

	rr := mockRequest(h, http.MethodGet, "/version", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d want 200", rr.Code)
	}
}
