package dispatch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/evekit/pkg/errors"
)

// Param is one query parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered parameter list. Order is preserved on the wire.
type Params []Param

// Encode renders the parameters as a query string in list order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Get returns the value of the first parameter called name.
func (p Params) Get(name string) (string, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// ParamsOf builds Params from alternating name/value pairs. Names must be
// strings; values are formatted with fmt.Sprint.
func ParamsOf(kv ...any) (Params, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "odd number of parameter arguments (%d)", len(kv))
	}
	params := make(Params, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "parameter name at position %d is %T, not string", i, kv[i])
		}
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "empty parameter name at position %d", i)
		}
		params = append(params, Param{Name: name, Value: fmt.Sprint(kv[i+1])})
	}
	return params, nil
}

// Descriptor identifies one remote request: where to send it, which
// parameters to attach and which representation to ask for.
//
// A Descriptor is a value; methods never modify the receiver.
type Descriptor struct {
	BaseURL string
	Path    string
	Params  Params
	Accept  string // Empty means the dispatcher's codec media type
}

// NewDescriptor builds a descriptor for relPath under base with parameters
// given as alternating name/value pairs.
func NewDescriptor(base, relPath string, kv ...any) (Descriptor, error) {
	params, err := ParamsOf(kv...)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{BaseURL: base, Path: relPath, Params: params}, nil
}

// With returns a copy of d with more parameters appended after the existing ones.
func (d Descriptor) With(kv ...any) (Descriptor, error) {
	extra, err := ParamsOf(kv...)
	if err != nil {
		return Descriptor{}, err
	}
	params := make(Params, 0, len(d.Params)+len(extra))
	params = append(params, d.Params...)
	d.Params = append(params, extra...)
	return d, nil
}

// WithAccept returns a copy of d that asks for the given media type.
func (d Descriptor) WithAccept(mediaType string) Descriptor {
	d.Accept = mediaType
	return d
}

// URL joins the base and path and appends the query string.
func (d Descriptor) URL() string {
	u := strings.TrimRight(d.BaseURL, "/") + "/" + strings.TrimLeft(d.Path, "/")
	if len(d.Params) == 0 {
		return u
	}
	return u + "?" + d.Params.Encode()
}

// String returns the URL with credentials redacted.
func (d Descriptor) String() string {
	return redact(d.URL())
}
