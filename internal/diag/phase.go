package diag

// Phase names the compiler stage that produced a diagnostic.
type Phase uint8

const (
	PhaseLexer Phase = iota
	PhaseParser
	PhaseSemantic
	PhaseCodegen
)

func (p Phase) String() string {
	switch p {
	case PhaseLexer:
		return "lexer"
	case PhaseParser:
		return "parser"
	case PhaseSemantic:
		return "semantic"
	case PhaseCodegen:
		return "codegen"
	}
	return "unknown"
}
