package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// Span is an open begin/end pair. A zero Span (from a disabled tracer) is inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, parent, "")
}

// BeginCtx opens a span with the tracer, parent and file taken from ctx.
// The returned context makes the new span the parent of nested spans.
func BeginCtx(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	span := begin(FromContext(ctx), scope, name, f.parent, f.file)
	if span.id == 0 {
		return ctx, span
	}
	return withParent(ctx, span.id), span
}

func begin(t Tracer, scope Scope, name string, parent uint64, file string) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
		File:     file,
	})
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	elapsed := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		File:     s.file,
		Detail:   detail,
		Elapsed:  elapsed,
	})
	return elapsed
}

// ID returns the span id, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event. Error points pass every level except off.
func Point(t Tracer, scope Scope, name, detail string, isError bool) {
	if t == nil || !t.Enabled() {
		return
	}
	if !isError && !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Name: name, Detail: detail})
}

// PointCtx is Point with the tracer and file taken from ctx.
func PointCtx(ctx context.Context, scope Scope, name, detail string, isError bool) {
	t := FromContext(ctx)
	if !t.Enabled() || (!isError && !t.Level().ShouldEmit(scope)) {
		return
	}
	f := frameOf(ctx)
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: f.parent, Name: name, File: f.file, Detail: detail})
}
