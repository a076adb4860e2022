package token

var keywords = map[string]Kind{
	"func":      KwFunc,
	"infer":     KwInfer,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"do":        KwDo,
	"while":     KwWhile,
	"return":    KwReturn,
	"break":     KwBreak,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"struct":    KwStruct,
	"class":     KwClass,
	"enum":      KwEnum,
	"static":    KwStatic,
	"public":    KwPublic,
	"private":   KwPrivate,
	"try":       KwTry,
	"catch":     KwCatch,
	"throw":     KwThrow,
	"namespace": KwNamespace,
	"operator":  KwOperator,
	"import":    KwImport,
	"const":     KwConst,
	"int":       KwInt,
	"float":     KwFloat,
	"double":    KwDouble,
	"char":      KwChar,
	"bool":      KwBool,
	"void":      KwVoid,
	"string":    KwString,
	"true":      KwTrue,
	"false":     KwFalse,
}

var keywordSpellings = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		m[k] = s
	}
	return m
}()

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
