package trace

import "context"

type tracerKey struct{}

// frame: то, что наследуют вложенные спаны: родитель и текущий файл.
type frame struct {
	parent uint64
	file   string
}

type frameKey struct{}

// FromContext returns the tracer stored by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{}
	}
	f, _ := ctx.Value(frameKey{}).(frame)
	return f
}

// ParentFromContext returns the id of the innermost span begun with BeginCtx, 0 for none.
func ParentFromContext(ctx context.Context) uint64 {
	return frameOf(ctx).parent
}

// FileFromContext returns the source file set by WithFile.
func FileFromContext(ctx context.Context) string {
	return frameOf(ctx).file
}

// WithFile tags every span and point begun from the returned context with path.
func WithFile(ctx context.Context, path string) context.Context {
	f := frameOf(ctx)
	f.file = path
	return context.WithValue(ctx, frameKey{}, f)
}

func withParent(ctx context.Context, id uint64) context.Context {
	f := frameOf(ctx)
	f.parent = id
	return context.WithValue(ctx, frameKey{}, f)
}
