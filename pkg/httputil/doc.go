// Package httputil provides retry helpers for registry requests.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff while it fails with a
// transient error. An error counts as transient when it is wrapped in
// [RetryableError] or when anything in its chain reports Temporary() == true
// (registry.FetchError does for network failures, 5xx and 429 responses):
//
//	err := httputil.Retry(ctx, 3, 500*time.Millisecond, func() error {
//	    deps, err = client.FetchDependencies(ctx, name, version)
//	    return err
//	})
//
// Registry clients never retry on their own; the resolver owns the policy and
// wraps each fetch with [Retry].
//
// Defaults used by [RetryWithBackoff]: 3 attempts, 1 second base delay,
// doubling after every failed attempt.
package httputil
