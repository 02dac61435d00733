package service

import (
	"context"
	"testing"
	"time"
)

func TestAnalyticsNilClientDiscards(t *testing.T) {
	svc := NewAnalyticsService(nil, 4)

	for i := 0; i < 100; i++ {
		svc.Track(Event{Kind: EventSearch, Query: "alien", Hits: 3})
	}

	done := make(chan struct{})
	go func() {
		svc.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close() did not drain within 2s")
	}
}

func TestAnalyticsTrackNeverBlocks(t *testing.T) {
	svc := NewAnalyticsService(nil, 1)
	defer svc.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			svc.Track(Event{Kind: EventPageView, Page: "dashboard"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Track() blocked on a full buffer")
	}
}

func TestAnalyticsSummaryWithoutStore(t *testing.T) {
	svc := NewAnalyticsService(nil, 1)
	defer svc.Close()

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if sum.Date != time.Now().Format("2006-01-02") {
		t.Errorf("Date = %q", sum.Date)
	}
	if len(sum.PageViews) != 0 || len(sum.TopSearches) != 0 {
		t.Errorf("summary should be empty without a store: %+v", sum)
	}
}
