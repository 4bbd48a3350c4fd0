package feed

import (
	"fmt"
	"slices"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/jusunglee/mta-board/internal/models"
)

// Decode parses a GTFS-Realtime protobuf payload
func Decode(data []byte) (*gtfs.FeedMessage, error) {
	msg := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}
	return msg, nil
}

// DeparturesForStop returns departure times (epoch seconds) of trips on
// routeID at stopID strictly after now, ascending.
func DeparturesForStop(msg *gtfs.FeedMessage, stopID, routeID string, now time.Time) []int64 {
	cutoff := now.Unix()
	times := []int64{}

	for _, entity := range msg.GetEntity() {
		tu := entity.GetTripUpdate()
		if tu == nil || tu.GetTrip().GetRouteId() != routeID {
			continue
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.GetStopId() != stopID {
				continue
			}
			if dep := stu.GetDeparture().GetTime(); dep > cutoff {
				times = append(times, dep)
			}
		}
	}

	slices.Sort(times)
	return times
}

// AlertedRoutes returns every route named by an alert's informed entities
func AlertedRoutes(msg *gtfs.FeedMessage) map[string]bool {
	routes := make(map[string]bool)
	for _, entity := range msg.GetEntity() {
		for _, sel := range entity.GetAlert().GetInformedEntity() {
			if r := sel.GetRouteId(); r != "" {
				routes[r] = true
			}
		}
	}
	return routes
}

// Alerts converts the feed's alert entities into API models
func Alerts(msg *gtfs.FeedMessage) []models.Alert {
	var alerts []models.Alert
	for _, entity := range msg.GetEntity() {
		a := entity.GetAlert()
		if a == nil {
			continue
		}

		alert := models.Alert{
			ID:          entity.GetId(),
			Header:      translation(a.GetHeaderText()),
			Description: translation(a.GetDescriptionText()),
		}
		for _, sel := range a.GetInformedEntity() {
			if r := sel.GetRouteId(); r != "" && !slices.Contains(alert.Routes, r) {
				alert.Routes = append(alert.Routes, r)
			}
			if s := sel.GetStopId(); s != "" && !slices.Contains(alert.Stations, s) {
				alert.Stations = append(alert.Stations, s)
			}
		}
		for _, period := range a.GetActivePeriod() {
			var tp models.TimePeriod
			if period.Start != nil {
				start := time.Unix(int64(period.GetStart()), 0).UTC()
				tp.Start = &start
			}
			if period.End != nil {
				end := time.Unix(int64(period.GetEnd()), 0).UTC()
				tp.End = &end
			}
			alert.ActivePeriods = append(alert.ActivePeriods, tp)
		}
		alerts = append(alerts, alert)
	}
	return alerts
}

// translation picks the English text, falling back to the first one
func translation(ts *gtfs.TranslatedString) string {
	list := ts.GetTranslation()
	for _, t := range list {
		if t.GetLanguage() == "en" {
			return t.GetText()
		}
	}
	if len(list) > 0 {
		return list[0].GetText()
	}
	return ""
}
