package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rwiggins1/adequate-c/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// treeBlock: отрисованное поддерево: строки одинаковой ширины и колонка корня.
type treeBlock struct {
	lines []string
	width int
	root  int
}

func buildTreeNode(builder *ast.Builder, ref ast.NodeRef) *treeNode {
	node := &treeNode{label: nodeLabel(builder, ref)}
	for _, child := range builder.Children(ref) {
		node.children = append(node.children, buildTreeNode(builder, child))
	}
	return node
}

// FormatASTTree рисует дерево сверху вниз, дети под родителем:
//
//	   Binary +
//	    /   \
//	Number 1  Number 2
func FormatASTTree(w io.Writer, builder *ast.Builder, ref ast.NodeRef) error {
	if ref.Kind == ast.NodeFile && builder.Files.Get(ref.File) == nil {
		return fmt.Errorf("file %d not found", ref.File)
	}
	block := renderTree(buildTreeNode(builder, ref))
	var sb strings.Builder
	for _, line := range block.lines {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func padRight(s string, width int) string {
	if n := runewidth.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// renderTree размещает детей в ряд через spacing колонок, центрирует родителя
// над крайними детьми и рисует строку связей "/ | \".
func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	const spacing = 3
	blocks := make([]treeBlock, len(node.children))
	positions := make([]int, len(node.children))
	height, offset := 0, 0
	for i, child := range node.children {
		blocks[i] = renderTree(child)
		height = max(height, len(blocks[i].lines))
		positions[i] = offset + blocks[i].root
		offset += blocks[i].width + spacing
	}
	childrenWidth := offset - spacing

	// сдвигаем либо метку вправо, либо весь ряд детей, чтобы корень был над центром
	center := (positions[0] + positions[len(positions)-1]) / 2
	labelShift, childShift := 0, 0
	if center >= labelWidth/2 {
		labelShift = center - labelWidth/2
	} else {
		childShift = labelWidth/2 - center
	}
	rootPos := labelShift + labelWidth/2
	width := max(labelShift+labelWidth, childShift+childrenWidth, rootPos+1)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		pos += childShift
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines, padRight(strings.Repeat(" ", labelShift)+node.label, width), string(connector))
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childShift))
		for i, block := range blocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			sb.WriteString(padRight(line, block.width))
			if i != len(blocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		lines = append(lines, padRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: rootPos}
}
