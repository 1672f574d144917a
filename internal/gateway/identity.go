package gateway

import "context"

type uidKey struct{}

// WithUID marks ctx as belonging to the signed-in user uid.
func WithUID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, uidKey{}, uid)
}

// UID returns the signed-in user carried by ctx.
func UID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(uidKey{}).(string)
	return uid, ok && uid != ""
}
