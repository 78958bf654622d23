package crest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/matzehuels/evekit/pkg/errors"
)

// Resource is a decoded JSON resource.
type Resource map[string]any

// Href returns the link stored under field, as in {"field": {"href": "..."}}.
func (r Resource) Href(field string) (string, bool) {
	obj, ok := r[field].(map[string]any)
	if !ok {
		return "", false
	}
	href, ok := obj["href"].(string)
	return href, ok
}

// Int returns a numeric field as int64.
func (r Resource) Int(field string) (int64, bool) {
	f, ok := r[field].(float64)
	return int64(f), ok
}

// Text returns a string field.
func (r Resource) Text(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// Items returns the "items" array of a collection resource.
func (r Resource) Items() []Resource {
	raw, _ := r["items"].([]any)
	items := make([]Resource, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			items = append(items, Resource(m))
		}
	}
	return items
}

// TimeLayout is the timestamp format of the JSON API. Times are UTC.
const TimeLayout = "2006-01-02T15:04:05"

// Time is a JSON API timestamp.
type Time struct {
	time.Time
}

// UnmarshalJSON accepts the API layout, RFC 3339, and null.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*t = Time{}
		return nil
	}
	for _, layout := range []string{TimeLayout, time.RFC3339} {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = Time{v.UTC()}
			return nil
		}
	}
	return errors.New(errors.ErrCodeDecode, "invalid timestamp %q", s)
}

// MarshalJSON writes the API layout.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(TimeLayout))
}

// Link is a hypermedia reference.
type Link struct {
	Href string `json:"href"`
}

// MarketHistoryEntry is one day of trading for a type in a region.
type MarketHistoryEntry struct {
	Volume     int64   `json:"volume"`
	OrderCount int64   `json:"orderCount"`
	LowPrice   float64 `json:"lowPrice"`
	HighPrice  float64 `json:"highPrice"`
	AvgPrice   float64 `json:"avgPrice"`
	Date       Time    `json:"date"`
}

// MarketHistory is the market history collection of a type in a region.
type MarketHistory struct {
	TotalCount int                  `json:"totalCount"`
	PageCount  int                  `json:"pageCount"`
	Items      []MarketHistoryEntry `json:"items"`
	Next       *Link                `json:"next,omitempty"`
	Previous   *Link                `json:"previous,omitempty"`
}

// MarketHistoryMediaType is the versioned representation requested for market history.
const MarketHistoryMediaType = "application/vnd.ccp.eve.MarketTypeHistoryCollection-v1+json"
