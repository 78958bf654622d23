package apikey

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/observability"
)

// Fetcher retrieves key information from the remote service.
//
// A rejected credential must be reported as a REJECTED_CREDENTIAL error.
type Fetcher interface {
	FetchKeyInfo(ctx context.Context, keyID int64, vCode string) (*Info, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, keyID int64, vCode string) (*Info, error)

// FetchKeyInfo calls f.
func (f FetcherFunc) FetchKeyInfo(ctx context.Context, keyID int64, vCode string) (*Info, error) {
	return f(ctx, keyID, vCode)
}

// snapshot is the published load result. A nil pointer means not yet loaded.
type snapshot struct {
	valid bool
	info  Info
}

// Key is an API credential with lazily loaded metadata.
type Key struct {
	id      int64
	vCode   string
	fetcher Fetcher

	state  atomic.Pointer[snapshot]
	flight singleflight.Group
}

// New creates a key. Nothing is fetched until an accessor needs it.
func New(keyID int64, vCode string, f Fetcher) *Key {
	return &Key{id: keyID, vCode: vCode, fetcher: f}
}

// ID returns the key ID.
func (k *Key) ID() int64 { return k.id }

// VCode returns the verification code.
func (k *Key) VCode() string { return k.vCode }

// String identifies the key without its verification code.
func (k *Key) String() string { return "key " + strconv.FormatInt(k.id, 10) }

// IsValid reports whether the remote service accepts the key.
// A rejected key returns (false, nil); any other failure is returned as an error.
func (k *Key) IsValid(ctx context.Context) (bool, error) {
	s, err := k.load(ctx)
	if err != nil {
		return false, err
	}
	return s.valid, nil
}

// Info returns all loaded key facts at once.
func (k *Key) Info(ctx context.Context) (Info, error) {
	s, err := k.load(ctx)
	if err != nil {
		return Info{}, err
	}
	if !s.valid {
		return Info{}, errors.New(errors.ErrCodeInvalidKey, "%s was rejected by the remote service", k)
	}
	return s.info, nil
}

// AccessMask returns the bit mask of granted endpoints.
func (k *Key) AccessMask(ctx context.Context) (int64, error) {
	info, err := k.Info(ctx)
	return info.AccessMask, err
}

// Type returns the key scope.
func (k *Key) Type(ctx context.Context) (KeyType, error) {
	info, err := k.Info(ctx)
	return info.Type, err
}

// ExpireDate returns the expiry time; the zero time means no expiry.
func (k *Key) ExpireDate(ctx context.Context) (time.Time, error) {
	info, err := k.Info(ctx)
	return info.Expires, err
}

// HasMask reports whether the key grants every bit of mask.
func (k *Key) HasMask(ctx context.Context, mask int64) (bool, error) {
	info, err := k.Info(ctx)
	if err != nil {
		return false, err
	}
	return info.Has(mask), nil
}

// Loaded reports whether the key facts are already known (valid or rejected).
func (k *Key) Loaded() bool { return k.state.Load() != nil }

func (k *Key) load(ctx context.Context) (*snapshot, error) {
	if s := k.state.Load(); s != nil {
		return s, nil
	}

	// The fetch outlives any one caller: a waiter giving up must not fail the
	// others sharing the flight.
	flightCtx := context.WithoutCancel(ctx)
	ch := k.flight.DoChan("info", func() (any, error) {
		if s := k.state.Load(); s != nil {
			return s, nil
		}
		return k.fetch(flightCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*snapshot), nil
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "load %s", k)
	}
}

func (k *Key) fetch(ctx context.Context) (*snapshot, error) {
	start := time.Now()
	info, err := k.fetcher.FetchKeyInfo(ctx, k.id, k.vCode)

	var s *snapshot
	switch {
	case err == nil && info == nil:
		err = errors.New(errors.ErrCodeUnexpected, "%s: fetcher returned no info", k)
	case err == nil:
		s = &snapshot{valid: true, info: *info}
	case errors.IsRejected(err):
		s = &snapshot{valid: false}
		err = nil
	}
	observability.Key().OnKeyLoad(ctx, k.id, s != nil && s.valid, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	k.state.Store(s)
	return s, nil
}
