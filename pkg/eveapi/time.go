package eveapi

import (
	"encoding/xml"
	"strings"
	"time"
)

// TimeLayout is the timestamp format of the XML API. Times are UTC.
const TimeLayout = "2006-01-02 15:04:05"

// Time is a timestamp in API format. An empty element or attribute decodes to
// the zero time. JSON encoding uses the embedded time.Time.
type Time struct {
	time.Time
}

func parseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, nil
	}
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return Time{}, err
	}
	return Time{t}, nil
}

// UnmarshalXML decodes an element such as <currentTime>2014-11-24 12:00:00</currentTime>.
func (t *Time) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	v, err := parseTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalXMLAttr decodes an attribute such as expires="2014-11-24 12:00:00".
func (t *Time) UnmarshalXMLAttr(attr xml.Attr) error {
	v, err := parseTime(attr.Value)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// String formats t in API layout, or "" for the zero time.
func (t Time) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
