package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Detail   string          `json:"detail,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево с отступами:
//
//	main.adc (span: 1:1-3:2)
//	└─ Function main() -> void (span: 1:1-3:2)
//	   └─ Block (span: 1:13-3:2)
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}

	var sb strings.Builder
	header := "File"
	if f := fileOf(fs, file.Span); f != nil {
		header = f.FormatPath("auto", fs.BaseDir())
	}
	fmt.Fprintf(&sb, "%s (span: %s)\n", header, formatSpan(file.Span, fs))
	writePrettyChildren(&sb, builder, ast.FileRef(fileID), fs, "")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writePrettyChildren(sb *strings.Builder, builder *ast.Builder, ref ast.NodeRef, fs *source.FileSet, prefix string) {
	children := builder.Children(ref)
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(sb, "%s%s%s (span: %s)\n", prefix, branch, nodeLabel(builder, child), formatSpan(builder.Span(child), fs))
		writePrettyChildren(sb, builder, child, fs, prefix+next)
	}
}

// BuildASTOutput строит сериализуемое дерево от ref.
func BuildASTOutput(builder *ast.Builder, ref ast.NodeRef) ASTNodeOutput {
	typ, kind := nodeKind(builder, ref)
	node := ASTNodeOutput{
		Type:   typ,
		Kind:   kind,
		Detail: nodeDetail(builder, ref),
		Span:   builder.Span(ref),
	}
	for _, child := range builder.Children(ref) {
		node.Children = append(node.Children, BuildASTOutput(builder, child))
	}
	return node
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	if builder.Files.Get(fileID) == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(builder, ast.FileRef(fileID)))
}
