// Package httputil provides HTTP utilities for registry clients.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures. Callers mark an
// error as transient by wrapping it in [RetryableError]; every other error
// is returned immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// The delay doubles after each failed attempt. [RetryWithBackoff] uses
// 3 attempts with a 1 second initial delay. Cancelling ctx stops waiting
// between attempts and returns ctx.Err().
package httputil
