// Package httputil checks remote media over HTTP.
//
// Galleries may reference images and videos on other hosts. The terminal
// preview cannot decode those, so it asks the host instead: [Head] sends a
// HEAD request and reports whether the resource is there, retrying transient
// failures with [Retry].
//
// Transient failures are network errors, 5xx responses and 429 rate limit
// responses. Everything else is final:
//
//	err := httputil.Head(ctx, client, "https://cdn.example.com/a.jpg")
//	if errors.Is(err, httputil.ErrNotFound) {
//	    // the gallery links to a missing file
//	}
package httputil
