package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func (f *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.RemoteAddr = ip + ":34567"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitBlocksIPAfterLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, "10.0.0.9", `{}`); rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}
	if rec := postLogin(handler, "10.0.0.9", `{}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", rec.Code)
	}
	if rec := postLogin(handler, "10.0.0.10", `{}`); rec.Code != http.StatusOK {
		t.Fatalf("other ip should not be blocked, got %d", rec.Code)
	}
}

func TestAuthRateLimitCountsEmailAcrossIPs(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"email":"Maria@Example.com"}`
	if rec := postLogin(handler, "10.0.0.1", body); rec.Code != http.StatusOK {
		t.Fatalf("first attempt should pass, got %d", rec.Code)
	}
	if rec := postLogin(handler, "10.0.0.2", `{"email":"maria@example.com"}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email from another ip, got %d", rec.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		if rec := postLogin(handler, "10.0.0.1", `{}`); rec.Code != http.StatusOK {
			t.Fatalf("disabled policy should never block, got %d", rec.Code)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("store should not be touched when disabled")
	}
}
