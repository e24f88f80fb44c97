package core

import "context"

type contextKey string

const ctxKeyClient contextKey = "import_client"

// ClientInfo identifies who submitted an import, for log correlation.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ContextWithClient attaches the submitting client to ctx.
func ContextWithClient(ctx context.Context, c ClientInfo) context.Context {
	return context.WithValue(ctx, ctxKeyClient, c)
}

// ClientFromContext returns the client stored by ContextWithClient.
func ClientFromContext(ctx context.Context) (ClientInfo, bool) {
	c, ok := ctx.Value(ctxKeyClient).(ClientInfo)
	return c, ok
}
