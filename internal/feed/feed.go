package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/mta-board/internal/config"
	"github.com/jusunglee/mta-board/internal/models"
	"github.com/jusunglee/mta-board/internal/store"
)

// Manager fetches the feeds a board needs and turns them into snapshots
type Manager struct {
	apiKey         string
	board          *config.BoardConfig
	store          *store.Store
	updateInterval time.Duration
	httpClient     *http.Client
	logger         *slog.Logger
	stopCh         chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
}

// NewManager creates a new feed manager. store may be nil when the
// manager is only used for one-shot snapshots; Start requires one.
func NewManager(board *config.BoardConfig, apiKey string, store *store.Store, updateInterval time.Duration) *Manager {
	return &Manager{
		apiKey:         apiKey,
		board:          board,
		store:          store,
		updateInterval: updateInterval,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "feed"),
		stopCh: make(chan struct{}),
	}
}

// Start begins the feed update loop
func (m *Manager) Start() error {
	if m.store == nil {
		return fmt.Errorf("feed manager has no store to update")
	}
	m.wg.Add(1)
	go m.updateLoop()
	return nil
}

// Stop stops the feed update loop. It is safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.wg.Wait()
}

func (m *Manager) updateLoop() {
	defer m.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-m.stopCh
		cancel()
	}()

	if err := m.update(ctx); err != nil {
		m.logger.Error("initial update failed", "error", err)
	}

	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.update(ctx); err != nil {
				m.logger.Error("update failed", "error", err)
			}
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) update(ctx context.Context) error {
	snap, alerts, err := m.collect(ctx, time.Now())
	if err != nil {
		return err
	}

	m.store.UpdateSnapshot(snap)
	m.store.UpdateAlerts(alerts)
	m.logger.Info("snapshot updated", "alerts", len(alerts), "fetched_at", snap.FetchedAt)
	return nil
}

// Snapshot fetches every feed the board references and builds arrivals
// for both directions of each configured route, plus one alert flag per
// route. Departures at or before now are dropped.
func (m *Manager) Snapshot(ctx context.Context, now time.Time) (models.Snapshot, error) {
	snap, _, err := m.collect(ctx, now)
	return snap, err
}

func (m *Manager) collect(ctx context.Context, now time.Time) (models.Snapshot, []models.Alert, error) {
	for i, s := range m.board.Stations {
		for _, prev := range m.board.Stations[:i] {
			if prev.Route == s.Route {
				return models.Snapshot{}, nil, fmt.Errorf("route %s is configured for stops %s and %s", s.Route, prev.StopID, s.StopID)
			}
		}
	}

	feeds, alertFeed, err := m.fetchAll(ctx)
	if err != nil {
		return models.Snapshot{}, nil, err
	}

	snap := models.Snapshot{
		Arrivals:  make(models.Arrivals, len(models.Directions)),
		Alerts:    make(models.AlertFlags, len(m.board.Stations)),
		FetchedAt: now,
	}
	for _, dir := range models.Directions {
		snap.Arrivals[dir] = make(map[string][]int64, len(m.board.Stations))
	}

	for _, s := range m.board.Stations {
		msg := feeds[s.Feed]
		for _, dir := range models.Directions {
			snap.Arrivals[dir][s.Route] = DeparturesForStop(msg, s.StopID+string(dir), s.Route, now)
		}
		snap.Alerts[s.Route] = false
	}

	var alerts []models.Alert
	sources := make([]*gtfs.FeedMessage, 0, len(feeds)+1)
	for _, f := range m.board.Feeds {
		if msg, ok := feeds[f.Name]; ok {
			sources = append(sources, msg)
		}
	}
	if alertFeed != nil {
		sources = append(sources, alertFeed)
	}
	for _, msg := range sources {
		for route := range AlertedRoutes(msg) {
			if _, ok := snap.Alerts[route]; ok {
				snap.Alerts[route] = true
			}
		}
		alerts = append(alerts, Alerts(msg)...)
	}

	return snap, alerts, nil
}

// fetchAll downloads every referenced feed concurrently. Any failure
// fails the whole batch.
func (m *Manager) fetchAll(ctx context.Context) (map[string]*gtfs.FeedMessage, *gtfs.FeedMessage, error) {
	needed := make(map[string]bool)
	for _, s := range m.board.Stations {
		needed[s.Feed] = true
	}

	var (
		mu        sync.Mutex
		feeds     = make(map[string]*gtfs.FeedMessage, len(needed))
		alertFeed *gtfs.FeedMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range m.board.Feeds {
		if !needed[f.Name] {
			continue
		}
		f := f
		g.Go(func() error {
			msg, err := m.fetchMessage(gctx, f.URL)
			if err != nil {
				return fmt.Errorf("feed %s: %w", f.Name, err)
			}
			mu.Lock()
			feeds[f.Name] = msg
			mu.Unlock()
			return nil
		})
	}
	if m.board.Alerts != "" {
		g.Go(func() error {
			msg, err := m.fetchMessage(gctx, m.board.Alerts)
			if err != nil {
				return fmt.Errorf("alerts feed: %w", err)
			}
			alertFeed = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return feeds, alertFeed, nil
}

func (m *Manager) fetchMessage(ctx context.Context, url string) (*gtfs.FeedMessage, error) {
	data, err := m.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Fetch downloads a raw feed. The API key header is sent when set.
func (m *Manager) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if m.apiKey != "" {
		req.Header.Set("x-api-key", m.apiKey)
	}

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("fetched feed", "url", url, "bytes", len(data), "took", time.Since(start))
	return data, nil
}
