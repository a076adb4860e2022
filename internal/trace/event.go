package trace

import "time"

// Kind: тип события: начало/конец спана или точка.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команды CLI, обход директории
	ScopePhase                   // load / lex / parse
	ScopeFile                    // один файл внутри ParseDir
	ScopeNode                    // отдельные узлы AST
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePhase: "phase", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивается tracer'ом при записи
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корневых спанов
	Name     string // "parse", "parse_dir", ...
	File     string // исходный файл, над которым идёт работа; пусто для общих событий
	Detail   string
	Elapsed  time.Duration // только для KindSpanEnd
}
