package web

import (
	"context"
	"net/http"

	"github.com/vlikcc/izbo-sub001/internal/core"
)

// withClient adds the caller's IP and User-Agent to the request context so
// import logs can be correlated with the client.
func withClient(r *http.Request) context.Context {
	return core.ContextWithClient(r.Context(), core.ClientInfo{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}
