// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser). Its goal is to smoke test robustness and guard
// against panics, hangs and broken trees on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер; для разобранных без ошибок входов
// дополнительно проверяются инварианты дерева (internal/testkit).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
