// Package config loads the board layout: which GTFS-RT feeds to read and
// which four stations occupy the panels.
//
// Configuration is loaded from YAML and validated using struct tags.
package config
