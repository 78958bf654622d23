// Package dispatch sends one request to a remote API and decodes the answer.
//
// A [Descriptor] names the endpoint and its ordered query parameters. A
// [Dispatcher] pairs a [transport.Transport] with a [codec.Codec] and runs
// descriptors in one of two modes:
//
//   - [Dispatch] returns a [Call] immediately and completes it on a
//     background goroutine. At most [DefaultMaxInFlight] calls (see
//     [WithMaxInFlight]) run at once; the rest wait for a slot.
//   - [DispatchBlocking] runs on the calling goroutine and returns the decoded
//     value. It never takes a pool slot, so blocking callers can not starve
//     each other of slots or wait on themselves.
//
// Both modes perform exactly one fetch. The dispatcher never retries and never
// caches; callers that want either build it on top (see the eveapi package).
//
// # Failures
//
// Every failure is a [*errors.Error] with one of the dispatch codes:
//
//	TRANSPORT_FAILURE    connection failure or 5xx status (retryable)
//	REJECTED_CREDENTIAL  HTTP 403
//	DECODE_FAILURE       body did not decode into the result type
//	CANCELED             the context ended first
//	UNEXPECTED_FAILURE   any other status or error
//
// Messages include the request URL with the verification code redacted.
//
// # Example
//
//	d := dispatch.New(transport.NewHTTP(), codec.XML{})
//	desc, err := dispatch.NewDescriptor("https://api.eveonline.com", "account/APIKeyInfo.xml.aspx",
//	    "keyID", 123, "vCode", code)
//	if err != nil {
//	    return err
//	}
//	call := dispatch.Dispatch[eveapi.Response[eveapi.KeyInfo]](ctx, d, desc)
//	resp, err := call.Await(ctx)
//
// [*errors.Error]: github.com/matzehuels/evekit/pkg/errors.Error
package dispatch
