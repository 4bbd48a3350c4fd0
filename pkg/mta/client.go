package mta

import (
	"time"

	"github.com/jusunglee/mta-board/internal/config"
	"github.com/jusunglee/mta-board/internal/models"
)

// Client defines the interface for reading board data
// Abstracts different data sources (local vs remote) behind common interface
type Client interface {
	Snapshot() (models.Snapshot, error)

	GetServiceAlerts() ([]models.Alert, error)

	GetLastUpdate() time.Time
}

// Config holds configuration for the MTA client
// APIKey is sent to MTA's GTFS-RT feeds when set. An empty ConfigPath
// selects the built-in board.
type Config struct {
	APIKey         string
	UpdateInterval time.Duration
	ConfigPath     string
	OutputPath     string
}

// DefaultConfig returns default configuration
// 60-second update interval balances freshness with API rate limits
func DefaultConfig() Config {
	return Config{
		UpdateInterval: 60 * time.Second,
		OutputPath:     "out/board.png",
	}
}

// LoadBoard reads the board layout from ConfigPath, or returns the
// built-in board when no path is set
func (c Config) LoadBoard() (*config.BoardConfig, error) {
	if c.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.ConfigPath)
}
