// Package codec converts response bodies into typed values.
//
// The dispatcher is generic over the result type; a Codec is the only place
// that knows the wire format. [XML] serves the key-scoped API and [JSON] the
// hypermedia API.
package codec

import (
	"encoding/json"
	"encoding/xml"
)

// Codec decodes response bodies and encodes values in one media type.
type Codec interface {
	Decode(data []byte, v any) error
	Encode(v any) ([]byte, error)
	MediaType() string
}

// XML is the encoding/xml codec.
type XML struct{}

// Decode unmarshals an XML document into v.
func (XML) Decode(data []byte, v any) error { return xml.Unmarshal(data, v) }

// Encode marshals v as XML.
func (XML) Encode(v any) ([]byte, error) { return xml.Marshal(v) }

// MediaType returns "application/xml".
func (XML) MediaType() string { return "application/xml" }

// JSON is the encoding/json codec.
type JSON struct{}

// Decode unmarshals a JSON document into v.
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// Encode marshals v as JSON.
func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// MediaType returns "application/json".
func (JSON) MediaType() string { return "application/json" }

var (
	_ Codec = XML{}
	_ Codec = JSON{}
)
