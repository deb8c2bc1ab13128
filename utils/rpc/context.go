package rpc

// Per-call metadata carried on the context so handlers and the operation log
// can tie a fault back to the request that caused it.

import "context"

// ContextMeta holds transport-level metadata for one RPC call.
type ContextMeta struct {
	// TraceID identifies this call in the operation log.
	TraceID string
	// RemoteIP is the caller's address as seen by the transport.
	RemoteIP string
	// UserAgent of the caller, when the transport carries one.
	UserAgent string
}

// private key type avoids collisions with other packages
type ctxMetaKey struct{}

// NewContextWithMeta attaches meta to the context.
func NewContextWithMeta(parent context.Context, meta *ContextMeta) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if meta == nil {
		return parent
	}
	return context.WithValue(parent, ctxMetaKey{}, meta)
}

// MetaFromContext reads the call metadata; nil when absent.
func MetaFromContext(ctx context.Context) *ContextMeta {
	if ctx == nil {
		return nil
	}
	if v := ctx.Value(ctxMetaKey{}); v != nil {
		if m, ok := v.(*ContextMeta); ok {
			return m
		}
	}
	return nil
}

// TraceIDFromContext is a shortcut for the common case; empty when no meta
// is attached.
func TraceIDFromContext(ctx context.Context) string {
	if m := MetaFromContext(ctx); m != nil {
		return m.TraceID
	}
	return ""
}
