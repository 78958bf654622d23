// Package eveapi is a client for the key-scoped XML API.
//
// Every endpoint comes in two forms: a blocking method returning the decoded
// [Response], and an Async method returning a [dispatch.Call] that completes
// in the background.
//
// # Keys
//
// Account endpoints take an [*apikey.Key]. The client implements
// [apikey.Fetcher], so keys created with [Client.NewKey] load their access
// mask, type and expiry through the same dispatcher:
//
//	client := eveapi.NewClient()
//	key := client.NewKey(123456, "vCode...")
//	valid, err := key.IsValid(ctx)
//
// [Client.Characters] lists the characters a valid key exposes. Character
// endpoints hang off the returned [Character] values.
//
// # Caching
//
// The remote service announces how long each answer stays fresh
// (cachedUntil). Blocking character endpoints read through the configured
// [cache.Cache] for that long and retry transient failures. Key information
// is never cached here; [apikey.Key] keeps it for the life of the key.
//
// # Errors
//
// Transport and decoding failures use the dispatch error codes. An error
// element in an otherwise successful answer becomes UNEXPECTED_FAILURE with
// the remote code in the message; only HTTP 403 marks a key as rejected.
package eveapi
