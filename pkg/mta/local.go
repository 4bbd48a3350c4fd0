package mta

import (
	"time"

	"github.com/jusunglee/mta-board/internal/config"
	"github.com/jusunglee/mta-board/internal/feed"
	"github.com/jusunglee/mta-board/internal/models"
	"github.com/jusunglee/mta-board/internal/store"
)

// LocalClient implements the Client interface for local usage
// Manages in-memory data store and background feed updates
type LocalClient struct {
	store       *store.Store
	feedManager *feed.Manager
}

// NewLocal creates a new local MTA client for the given board.
// Starts background feed manager for automatic data updates.
func NewLocal(cfg Config, board *config.BoardConfig) (*LocalClient, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}

	s := store.NewStore()
	fm := feed.NewManager(board, cfg.APIKey, s, cfg.UpdateInterval)
	if err := fm.Start(); err != nil {
		return nil, err
	}

	return &LocalClient{
		store:       s,
		feedManager: fm,
	}, nil
}

// Close gracefully shuts down the local client
// Must be called to stop background goroutines and prevent leaks
func (c *LocalClient) Close() {
	c.feedManager.Stop()
}

func (c *LocalClient) Snapshot() (models.Snapshot, error) {
	return c.store.Snapshot()
}

func (c *LocalClient) GetServiceAlerts() ([]models.Alert, error) {
	return c.store.GetServiceAlerts(), nil
}

func (c *LocalClient) GetLastUpdate() time.Time {
	return c.store.GetLastUpdate()
}
