package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"dailydigest/app/database"
	"dailydigest/app/digest"
)

type fakeDigestRepo struct {
	digests map[string]*digest.Digest
}

func (r *fakeDigestRepo) StoreDigest(_ context.Context, date string, d *digest.Digest) error {
	r.digests[date] = d
	return nil
}

func (r *fakeDigestRepo) GetDigest(_ context.Context, date string) (*digest.Digest, error) {
	return r.digests[date], nil
}

type fakeFeedbackRepo struct {
	stored []database.FeedbackRecord
}

func (r *fakeFeedbackRepo) StoreFeedback(_ context.Context, record database.FeedbackRecord) error {
	r.stored = append(r.stored, record)
	return nil
}

func (r *fakeFeedbackRepo) GetRecentFeedback(_ context.Context, _ int) ([]database.FeedbackRecord, error) {
	return r.stored, nil
}

type fakeDispatcher struct {
	calls int
	err   error
}

func (d *fakeDispatcher) Dispatch(_ context.Context) error {
	d.calls++
	return d.err
}

func newTestServer(secret string) (*gin.Engine, *fakeDigestRepo, *fakeFeedbackRepo, *fakeDispatcher) {
	digestRepo := &fakeDigestRepo{digests: make(map[string]*digest.Digest)}
	feedbackRepo := &fakeFeedbackRepo{}
	dispatcher := &fakeDispatcher{}
	handler := NewHandler(digestRepo, feedbackRepo, dispatcher, "test")
	return NewServer(handler, secret), digestRepo, feedbackRepo, dispatcher
}

func TestPostFeedback(t *testing.T) {
	router, _, feedbackRepo, _ := newTestServer("")

	body := `{"date":"2026-09-01","articleId":"abc123","title":"T","sourceName":"Blog","vote":"up"}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(feedbackRepo.stored) != 1 {
		t.Fatalf("Expected 1 stored record, got %d", len(feedbackRepo.stored))
	}
	if feedbackRepo.stored[0].Vote != database.VoteUp {
		t.Errorf("Expected up vote, got %q", feedbackRepo.stored[0].Vote)
	}
}

func TestPostFeedbackInvalidVote(t *testing.T) {
	router, _, feedbackRepo, _ := newTestServer("")

	body := `{"date":"2026-09-01","articleId":"abc123","vote":"sideways"}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if len(feedbackRepo.stored) != 0 {
		t.Errorf("Invalid vote must not be stored, got %d records", len(feedbackRepo.stored))
	}
}

func TestPostFeedbackMissingFields(t *testing.T) {
	router, _, feedbackRepo, _ := newTestServer("")

	for _, body := range []string{
		`{"articleId":"abc123","vote":"up"}`,
		`{"date":"2026-09-01","vote":"up"}`,
	} {
		req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for body %s, got %d", body, w.Code)
		}
	}
	if len(feedbackRepo.stored) != 0 {
		t.Errorf("Incomplete requests must not be stored, got %d records", len(feedbackRepo.stored))
	}
}

func TestGetDigest(t *testing.T) {
	router, digestRepo, _, _ := newTestServer("")
	digestRepo.digests["2026-09-01"] = &digest.Digest{Date: "2026-09-01"}

	req := httptest.NewRequest("GET", "/digests/2026-09-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "2026-09-01") {
		t.Errorf("Expected digest date in response, got %s", w.Body.String())
	}
}

func TestGetDigestNotFound(t *testing.T) {
	router, _, _, _ := newTestServer("")

	req := httptest.NewRequest("GET", "/digests/2026-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestPostTriggerAuth(t *testing.T) {
	router, _, _, dispatcher := newTestServer("s3cret")

	// No token
	req := httptest.NewRequest("POST", "/api/trigger", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", w.Code)
	}

	// Wrong token
	req = httptest.NewRequest("POST", "/api/trigger", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with wrong token, got %d", w.Code)
	}

	if dispatcher.calls != 0 {
		t.Errorf("Dispatcher must not run without valid auth, got %d calls", dispatcher.calls)
	}

	// Valid token
	req = httptest.NewRequest("POST", "/api/trigger", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with valid token, got %d: %s", w.Code, w.Body.String())
	}
	if dispatcher.calls != 1 {
		t.Errorf("Expected 1 dispatch, got %d", dispatcher.calls)
	}
}

func TestHealth(t *testing.T) {
	router, _, _, _ := newTestServer("")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
