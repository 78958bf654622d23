// Package pkg provides the client libraries for the EVE Online XML API and the
// public CREST JSON API.
//
// # Overview
//
// Every remote call goes through one generic request dispatcher. The
// dispatcher turns a request descriptor into a decoded value and reports
// failures with a single taxonomy (see [errors]). On top of it sit the two
// API clients and a lazily loaded, concurrency-safe credential cache:
//
//  1. [dispatch] - Request descriptors, non-blocking Dispatch and DispatchBlocking
//  2. [transport] - HTTP byte fetching and status classification
//  3. [codec] - XML and JSON decoding
//  4. [apikey] - API key credentials with single-flight key-info loading
//  5. [eveapi] - Typed XML API client (account and character endpoints)
//  6. [crest] - JSON API client (killmails, alliances, market history)
//
// # Architecture
//
// The data flow for one request:
//
//	Descriptor (base URL, path, ordered params)
//	         ↓
//	    [dispatch] (slot, request ID, hooks)
//	         ↓
//	    [transport] (GET, status → failure kind)
//	         ↓
//	    [codec] (bytes → T)
//	         ↓
//	    T or a classified error
//
// The dispatcher never caches. The [eveapi] client caches decoded character
// responses in a [cache] backend for as long as the API's cachedUntil allows.
//
// # Quick Start
//
//	client := eveapi.NewClient()
//	key := client.NewKey(keyID, vCode)
//
//	valid, err := key.IsValid(ctx) // one fetch, shared by all callers
//	chars, err := client.Characters(ctx, key)
//	bal, err := chars[0].AccountBalance(ctx)
//
// # Supporting Packages
//
// [config] - TOML file and EVEKIT_* environment settings.
//
// [cache] - File, Redis and null response caches with credential-free keys.
//
// [httputil] - Retry with backoff for transport failures.
//
// [keystore] - Named API keys on disk for the CLI.
//
// [observability] - Hooks for dispatch, HTTP, cache and key-load events, with a
// Prometheus implementation in observability/prom.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include the Redis integration test
//
// [errors]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/errors
// [dispatch]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/dispatch
// [transport]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/transport
// [codec]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/codec
// [apikey]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/apikey
// [eveapi]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/eveapi
// [crest]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/crest
// [config]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/httputil
// [keystore]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/keystore
// [observability]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/evekit/pkg/buildinfo
package pkg
