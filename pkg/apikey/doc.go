// Package apikey holds API credentials and the lazily loaded facts about them.
//
// A [Key] is a (key ID, verification code) pair. Its access mask, key type and
// expiry date are not known up front; the first accessor that needs them
// fetches all three with one remote call through a [Fetcher] and every later
// accessor reads the stored result.
//
// # Concurrency
//
// A Key is safe for concurrent use. Once loaded, accessors read an immutable
// snapshot without locking. While no snapshot exists, concurrent accessors of
// the same key share a single in-flight fetch; different keys never wait on
// each other.
//
// # Rejection
//
// If the remote service refuses the credential (REJECTED_CREDENTIAL), the key
// is marked invalid for the rest of its life: IsValid returns false and the
// other accessors fail with INVALID_KEY, all without another fetch. Any other
// failure is returned to the caller and nothing is remembered, so the next
// access tries again.
package apikey
