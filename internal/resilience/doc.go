// Package resilience groups the fault tolerance building blocks used around
// external calls: circuit breakers for the LLM APIs, the local classifier
// service, feed hosts, and the database, plus retry with exponential backoff
// and jitter for transient failures.
//
//	cb := circuitbreaker.New(circuitbreaker.LLMAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callClassifier()
//	})
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return fetchFeed()
//	})
package resilience
