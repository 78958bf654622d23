package eveapi

import (
	"encoding/json"
	"encoding/xml"
	"testing"
	"time"
)

func TestTimeUnmarshalXML(t *testing.T) {
	var v struct {
		At      Time `xml:"at"`
		Expires Time `xml:"expires,attr"`
	}
	data := `<doc expires="2015-06-01 00:00:00"><at>2014-11-24 12:05:30</at></doc>`
	if err := xml.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if want := time.Date(2014, 11, 24, 12, 5, 30, 0, time.UTC); !v.At.Equal(want) {
		t.Errorf("At = %v, want %v", v.At, want)
	}
	if want := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC); !v.Expires.Equal(want) {
		t.Errorf("Expires = %v, want %v", v.Expires, want)
	}
}

func TestTimeEmptyIsZero(t *testing.T) {
	var v struct {
		At      Time `xml:"at"`
		Expires Time `xml:"expires,attr"`
	}
	if err := xml.Unmarshal([]byte(`<doc expires=""><at></at></doc>`), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !v.At.IsZero() || !v.Expires.IsZero() {
		t.Errorf("empty values should be zero: %v, %v", v.At, v.Expires)
	}
	if v.Expires.String() != "" {
		t.Errorf("String() = %q, want empty", v.Expires.String())
	}
}

func TestTimeInvalid(t *testing.T) {
	var v struct {
		At Time `xml:"at"`
	}
	if err := xml.Unmarshal([]byte(`<doc><at>yesterday</at></doc>`), &v); err == nil {
		t.Error("Unmarshal() expected error")
	}
}

func TestTimeJSONRoundTrip(t *testing.T) {
	in := Time{time.Date(2014, 11, 24, 12, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Time
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in.Time) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
	if got := in.String(); got != "2014-11-24 12:00:00" {
		t.Errorf("String() = %q", got)
	}
}
