// Package ctxutil carries request-scoped values (trace id, gin context) through
// context.Context.
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	log.Infof(ctx, "trace %s", traceID)
package ctxutil
