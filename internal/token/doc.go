// Package token defines lexical token kinds and trivia for the adequate front end.
// Invariants:
//   - Token.Text is the exact lexeme, byte for byte.
//   - Token.Span matches Text (Start..End), Line/Col point at its first byte.
//   - Type names (int, float, double, char, bool, void, string) are keywords.
//   - Comments and whitespace never appear in the main stream; they are kept
//     as leading Trivia of the following token.
package token
