package barrelhouse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldsales_backend/platform/apperr"
	"fieldsales_backend/platform/logger"
)

type testConfig struct {
	baseURL string
	token   string
}

func (c testConfig) GetBarrelhouseBaseURL() string { return c.baseURL }
func (c testConfig) GetBarrelhouseToken() string   { return c.token }
func (c testConfig) IsBarrelhouseEnabled() bool    { return c.baseURL != "" }

func TestGetStatsDecodesFunnelSummary(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pipeline/stats/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_leads":42,"qualified_leads":11,"meetings_this_week":3,"conversion_rate":0.26}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig{baseURL: srv.URL, token: "crm-token"}, logger.New("development"))
	stats, err := client.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}

	if stats.TotalLeads != 42 || stats.QualifiedLeads != 11 {
		t.Errorf("lead counts = %+v", stats)
	}
	if stats.MeetingsThisWeek != 3 {
		t.Errorf("meetings = %d, want 3", stats.MeetingsThisWeek)
	}
	if stats.ConversionRate != 0.26 {
		t.Errorf("conversion rate = %v, want 0.26", stats.ConversionRate)
	}
	if gotAuth != "Bearer crm-token" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestGetStatsUpstreamFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig{baseURL: srv.URL}, logger.New("development"))
	if _, err := client.GetStats(context.Background()); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("upstream 500 must map to unavailable, got %v", err)
	}
}

func TestGetStatsWhenNotConfigured(t *testing.T) {
	client := NewClient(testConfig{}, logger.New("development"))
	if _, err := client.GetStats(context.Background()); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("unconfigured crm must report unavailable, got %v", err)
	}
}
