package trace

import "context"

type ctxKey struct{}

// WithTracer attaches a Tracer to the context. A nil tracer is stored
// as Nop so FromContext never hands out nil.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the Tracer from the context, or Nop when none
// was attached.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}
