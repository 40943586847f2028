package portal

import "context"

type ctxKey string

const (
	ctxKeyIdentity  ctxKey = "portal_identity"
	ctxKeyRequestID ctxKey = "portal_request_id"
)

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, identity)
}

// IdentityFromContext extracts the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyIdentity).(string)
	return v
}

// WithRequestID stores a correlation ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestIDFromContext extracts the correlation ID from the context.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
