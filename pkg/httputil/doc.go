// Package httputil provides retry helpers for the API clients.
//
// # Overview
//
// The dispatcher never retries: one dispatch is one network operation. Callers
// that want to ride out transient failures (the response-caching endpoint
// helpers in eveapi, for example) wrap the dispatch in [Retry].
//
// # Retry
//
// [Retry] re-runs a function for failures marked with [RetryableError]:
//
//   - Connection-level transport failures
//   - 5xx server errors
//
// Every other error, including a rejected credential or a decode failure, is
// returned immediately. The delay doubles after each failed attempt:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    v, err = dispatch.DispatchBlocking[Balance](ctx, d, desc)
//	    return err
//	})
//
// The eveapi client retries its cached reads 3 times from a 1 second initial
// delay unless eveapi.WithRetry says otherwise.
package httputil
