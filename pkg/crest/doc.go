// Package crest is a client for the public hypermedia JSON API.
//
// Most resources are returned as a generic [Resource] tree, since their shape
// varies between versions. Market history is typed. Every endpoint has a
// blocking form and an Async form returning a [dispatch.Call].
//
//	client := crest.NewClient()
//	history, err := client.MarketHistory(ctx, 10000002, 34)
//	for _, day := range history.Items {
//	    fmt.Println(day.Date, day.AvgPrice)
//	}
//
// Resources link to each other through "href" fields; [Client.Follow] fetches
// the resource behind such a link.
package crest
