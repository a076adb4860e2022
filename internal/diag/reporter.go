package diag

import "github.com/rwiggins1/adequate-c/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, phase Phase, sev Severity, code Code, primary source.Span, line, col uint32, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag: Diagnostic{
			Phase:    phase,
			Severity: sev,
			Code:     code,
			Message:  msg,
			Line:     line,
			Column:   col,
			Primary:  primary,
		},
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, phase Phase, code Code, primary source.Span, line, col uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, phase, SevError, code, primary, line, col, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, phase Phase, code Code, primary source.Span, line, col uint32, msg string) *ReportBuilder {
	return NewReportBuilder(r, phase, SevWarning, code, primary, line, col, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// WithFilename overrides the filename the receiving bag would stamp.
func (b *ReportBuilder) WithFilename(name string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Filename = name
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// BagOf returns the Bag a reporter chain ends in, or nil.
func BagOf(r Reporter) *Bag {
	switch r := r.(type) {
	case BagReporter:
		return r.Bag
	case *BagReporter:
		if r != nil {
			return r.Bag
		}
	case *DedupReporter:
		if r != nil {
			return BagOf(r.next)
		}
	}
	return nil
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
