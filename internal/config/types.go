package config

import (
	"github.com/jusunglee/mta-board/internal/models"
)

// FeedConfig names one GTFS-Realtime endpoint
type FeedConfig struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

// BoardConfig is the root configuration structure
type BoardConfig struct {
	Feeds []FeedConfig `yaml:"feeds" validate:"required,min=1,dive"`
	// Alerts is an optional service alert feed. Alert entities found in
	// the trip feeds are honored either way.
	Alerts   string                 `yaml:"alerts,omitempty" validate:"omitempty,url"`
	Stations []models.StationConfig `yaml:"stations" validate:"len=4,unique=Route,dive"`
}

// Route bullet colors
const (
	SubwayRed    = "#EE352E"
	SubwayOrange = "#FF6319"
	SubwayYellow = "#FCCC0A"
	White        = "#FFFFFF"
	Black        = "#000000"
)

// Feed URLs for the lines on the default board
const (
	Feed123  = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs"      // 1234567S
	FeedBDFM = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-bdfm" // BDFM
	FeedNQRW = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-nqrw" // NRQW

	FeedSubwayAlerts = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/camsys%2Fsubway-alerts"
)

// Default returns the built-in board: 2 and 3 trains at 145 St (237)
// and B and Q trains at 7 Av (D25).
func Default() *BoardConfig {
	return &BoardConfig{
		Feeds: []FeedConfig{
			{Name: "123", URL: Feed123},
			{Name: "bdfm", URL: FeedBDFM},
			{Name: "nqrw", URL: FeedNQRW},
		},
		Alerts: FeedSubwayAlerts,
		Stations: []models.StationConfig{
			{
				Name:        "WAKEFIELD - 241ST",
				ReverseName: "FLATBUSH",
				Route:       "2",
				Badge:       models.RouteBadge{Label: "2", Foreground: White, Background: SubwayRed},
				WalkMinutes: 6,
				StopID:      "237",
				Feed:        "123",
			},
			{
				Name:        "HARLEM - 148 ST",
				ReverseName: "NEW LOTS",
				Route:       "3",
				Badge:       models.RouteBadge{Label: "3", Foreground: White, Background: SubwayRed},
				WalkMinutes: 6,
				StopID:      "237",
				Feed:        "123",
			},
			{
				Name:        "145 ST",
				ReverseName: "BRIGHTON",
				Route:       "B",
				Badge:       models.RouteBadge{Label: "B", Foreground: White, Background: SubwayOrange},
				WalkMinutes: 9,
				StopID:      "D25",
				Feed:        "bdfm",
			},
			{
				Name:        "96 ST",
				ReverseName: "CONEY ISL",
				Route:       "Q",
				Badge:       models.RouteBadge{Label: "Q", Foreground: Black, Background: SubwayYellow},
				WalkMinutes: 9,
				StopID:      "D25",
				Feed:        "nqrw",
			},
		},
	}
}
