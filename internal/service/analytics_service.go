package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event kinds accepted by the analytics stream.
const (
	EventPageView = "page_view"
	EventSearch   = "search"
	EventActivity = "activity"
)

const recentActivityCap = 100

// Event is one fire-and-forget analytics beacon. Delivery is not
// guaranteed: the stream drops events rather than block a request.
type Event struct {
	Kind     string `json:"kind"`
	Page     string `json:"page,omitempty"`
	Query    string `json:"query,omitempty"`
	Hits     int64  `json:"hits,omitempty"`
	Activity string `json:"activity,omitempty"`
	Country  string `json:"country,omitempty"`
}

// PageViews maps page name to today's view count.
type PageViews map[string]int64

// AnalyticsSummary is the insights payload for today.
type AnalyticsSummary struct {
	Date        string           `json:"date"`
	PageViews   PageViews        `json:"page_views"`
	TopSearches []SearchActivity `json:"top_searches"`
}

// SearchActivity pairs a query with how often it ran today.
type SearchActivity struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// AnalyticsService consumes an in-process event stream and applies
// counters to the analytics DB, fully decoupled from the search
// request/response path.
type AnalyticsService struct {
	client *redis.Client
	events chan Event

	wg   sync.WaitGroup
	once sync.Once
}

// NewAnalyticsService creates the service and starts its consumer. A nil
// client disables persistence; events are accepted and discarded so
// callers never need to care.
func NewAnalyticsService(client *redis.Client, bufferSize int) *AnalyticsService {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	s := &AnalyticsService{
		client: client,
		events: make(chan Event, bufferSize),
	}
	s.wg.Add(1)
	go s.consume()
	return s
}

// Track enqueues an event without blocking. When the buffer is full the
// event is dropped: analytics are best-effort by contract.
func (s *AnalyticsService) Track(e Event) {
	select {
	case s.events <- e:
	default:
		slog.Debug("analytics event dropped, buffer full", "kind", e.Kind)
	}
}

// Close stops accepting events and drains the buffer.
func (s *AnalyticsService) Close() {
	s.once.Do(func() { close(s.events) })
	s.wg.Wait()
}

func (s *AnalyticsService) consume() {
	defer s.wg.Done()
	for e := range s.events {
		if s.client == nil {
			continue
		}
		if err := s.apply(context.Background(), e); err != nil {
			slog.Warn("analytics counter update failed", "kind", e.Kind, "error", err)
		}
	}
}

func (s *AnalyticsService) apply(ctx context.Context, e Event) error {
	today := time.Now().Format("2006-01-02")
	month := time.Now().Format("2006-01")

	switch e.Kind {
	case EventPageView:
		if err := s.client.HIncrBy(ctx, "page_views:daily:"+today, e.Page, 1).Err(); err != nil {
			return err
		}
		if e.Country != "" {
			return s.client.HIncrBy(ctx, "user_countries:monthly:"+month, e.Country, 1).Err()
		}
		return nil

	case EventSearch:
		if err := s.client.HIncrBy(ctx, "search_activities:daily:"+today, e.Query, 1).Err(); err != nil {
			return err
		}
		return s.client.ZIncrBy(ctx, "search_rankings:daily:"+today, float64(e.Hits), e.Query).Err()

	case EventActivity:
		key := "page_activities:daily:" + today
		pipe := s.client.Pipeline()
		pipe.LPush(ctx, key, e.Page+"|"+e.Activity)
		pipe.LTrim(ctx, key, 0, recentActivityCap-1)
		_, err := pipe.Exec(ctx)
		return err

	default:
		slog.Debug("unknown analytics event kind", "kind", e.Kind)
		return nil
	}
}

// Summary reads today's counters back for the insights endpoint.
func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	today := time.Now().Format("2006-01-02")
	out := &AnalyticsSummary{Date: today, PageViews: PageViews{}}
	if s.client == nil {
		return out, nil
	}

	views, err := s.client.HGetAll(ctx, "page_views:daily:"+today).Result()
	if err != nil {
		return nil, err
	}
	for page, raw := range views {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			out.PageViews[page] = n
		}
	}

	ranked, err := s.client.ZRevRangeWithScores(ctx, "search_rankings:daily:"+today, 0, 9).Result()
	if err != nil {
		return nil, err
	}
	for _, z := range ranked {
		query, _ := z.Member.(string)
		out.TopSearches = append(out.TopSearches, SearchActivity{
			Query: query,
			Count: int64(z.Score),
		})
	}
	return out, nil
}
