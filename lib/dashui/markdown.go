// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// One shared goldmark instance: the configuration never changes and
// Parse keeps its state per call.
var (
	promptParserShared goldmark.Markdown
	promptParserOnce   sync.Once
)

func promptParser() goldmark.Markdown {
	promptParserOnce.Do(func() {
		promptParserShared = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return promptParserShared
}

// renderMarkdown renders a job prompt as styled terminal text. Soft
// line breaks inside paragraphs become spaces so hard-wrapped prompt
// text reflows at any pane width; code blocks, lists, and blockquotes
// keep their structure.
func renderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := promptParser().Parser().Parse(text.NewReader(source))

	// Pin the color profile to ANSI256. This output only ever goes to
	// the TUI, and letting lipgloss sniff the environment would strip
	// color whenever stdout is not a TTY, tests included. Both the
	// renderer option and SetColorProfile are needed; the renderer
	// re-detects otherwise.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	p := &promptRenderer{
		source: source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	ast.Walk(document, p.walk)

	return strings.TrimRight(p.out.String(), "\n")
}

// promptRenderer walks the goldmark AST directly rather than through
// goldmark's renderer interface. Terminal output wants
// accumulate-then-wrap: a block's inline content collects in the flow
// buffer and word-wraps as one unit when the block closes.
type promptRenderer struct {
	source []byte
	theme  Theme
	width  int
	styles *lipgloss.Renderer

	// out is the finished document; endNewlines tracks how many
	// newlines it currently ends with, for blank-line management
	// between blocks.
	out         strings.Builder
	endNewlines int

	// flow accumulates the current block's inline content.
	flow strings.Builder

	// Indentation for nested containers (blockquote bars, list item
	// hangs). bullet, when set, replaces the indent for exactly one
	// emitted line.
	indents     []string
	indent      string
	indentWidth int
	bullet      string

	// Open emphasis depth. Counters, not booleans, so nesting unwinds.
	emphasis struct {
		bold   int
		italic int
		strike int
	}

	lists []listFrame
}

// listFrame tracks one level of list nesting.
type listFrame struct {
	numbered bool
	next     int
	tight    bool
}

func (p *promptRenderer) style() lipgloss.Style {
	return p.styles.NewStyle()
}

// wrapWidth is the content width left inside the current indentation,
// floored so deep nesting still wraps somewhere.
func (p *promptRenderer) wrapWidth() int {
	width := p.width - p.indentWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (p *promptRenderer) pushIndent(prefix string, visibleWidth int) {
	p.indents = append(p.indents, prefix)
	p.indent += prefix
	p.indentWidth += visibleWidth
}

func (p *promptRenderer) popIndent() {
	if len(p.indents) == 0 {
		return
	}
	top := p.indents[len(p.indents)-1]
	p.indents = p.indents[:len(p.indents)-1]
	p.indent = p.indent[:len(p.indent)-len(top)]
	p.indentWidth -= lipgloss.Width(top)
}

func (p *promptRenderer) tightList() bool {
	if len(p.lists) == 0 {
		return false
	}
	return p.lists[len(p.lists)-1].tight
}

// emit appends finished text, keeping the trailing-newline count
// current.
func (p *promptRenderer) emit(s string) {
	if s == "" {
		return
	}
	p.out.WriteString(s)

	suffix := len(s) - len(strings.TrimRight(s, "\n"))
	if suffix == len(s) {
		p.endNewlines += suffix
	} else {
		p.endNewlines = suffix
	}
}

func (p *promptRenderer) breakLine() {
	if p.endNewlines < 1 {
		p.emit("\n")
	}
}

func (p *promptRenderer) blankLine() {
	for p.endNewlines < 2 {
		p.emit("\n")
	}
}

// takeIndent returns the queued bullet if one is pending, consuming
// it, otherwise the regular indent.
func (p *promptRenderer) takeIndent() string {
	if p.bullet != "" {
		taken := p.bullet
		p.bullet = ""
		return taken
	}
	return p.indent
}

// indentLines prepends the indent to each line, letting the first
// line consume a pending bullet.
func (p *promptRenderer) indentLines(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = p.takeIndent() + line
		} else {
			lines[index] = p.indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// flushFlow word-wraps the accumulated inline content, indents it,
// and resets the buffer.
func (p *promptRenderer) flushFlow() string {
	content := p.flow.String()
	p.flow.Reset()
	if content == "" {
		return ""
	}
	wrapped := ansi.Wrap(content, p.wrapWidth(), " ,.;-+|")
	return p.indentLines(wrapped)
}

// styled renders text with whatever emphasis is currently open.
func (p *promptRenderer) styled(content string) string {
	style := p.style().Foreground(p.theme.NormalText)
	if p.emphasis.bold > 0 {
		style = style.Bold(true)
	}
	if p.emphasis.italic > 0 {
		style = style.Italic(true)
	}
	if p.emphasis.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// collectInline renders a node's children into a standalone string.
// The flow buffer and emphasis depths are saved and restored so the
// surrounding context stays untouched.
func (p *promptRenderer) collectInline(node ast.Node) string {
	savedFlow := p.flow.String()
	savedEmphasis := p.emphasis

	p.flow.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, p.walk)
	}
	collected := p.flow.String()

	p.flow.Reset()
	p.flow.WriteString(savedFlow)
	p.emphasis = savedEmphasis

	return collected
}

// highlight syntax-highlights fenced code via chroma, falling back to
// faint plain text when the language is missing or unknown.
func (p *promptRenderer) highlight(code, language string) string {
	if language == "" {
		return p.style().Foreground(p.theme.FaintText).Render(code)
	}
	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err != nil {
		return p.style().Foreground(p.theme.FaintText).Render(code)
	}
	return highlighted.String()
}

func (p *promptRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return p.enter(node), nil
	}
	p.leave(node)
	return ast.WalkContinue, nil
}

func (p *promptRenderer) enter(node ast.Node) ast.WalkStatus {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
		p.flow.Reset()

	case ast.KindFencedCodeBlock:
		p.fencedCode(node.(*ast.FencedCodeBlock))
		return ast.WalkSkipChildren

	case ast.KindCodeBlock:
		p.indentedCode(node.(*ast.CodeBlock))
		return ast.WalkSkipChildren

	case ast.KindBlockquote:
		p.pushIndent("│ ", 2)

	case ast.KindList:
		p.openList(node.(*ast.List))

	case ast.KindListItem:
		p.openItem()

	case ast.KindThematicBreak:
		p.horizontalRule()

	case ast.KindText:
		p.text(node.(*ast.Text))

	case ast.KindString:
		p.flow.WriteString(p.styled(string(node.(*ast.String).Value)))

	case ast.KindEmphasis:
		p.emphasisShift(node.(*ast.Emphasis), 1)

	case ast.KindCodeSpan:
		p.codeSpan(node)
		return ast.WalkSkipChildren

	case ast.KindLink:
		p.link(node.(*ast.Link))
		return ast.WalkSkipChildren

	case ast.KindAutoLink:
		url := string(node.(*ast.AutoLink).URL(p.source))
		p.flow.WriteString(p.style().Foreground(p.theme.FaintText).Render(url))

	case extast.KindStrikethrough:
		p.emphasis.strike++

	case extast.KindTable:
		p.table(node)
		return ast.WalkSkipChildren

	case extast.KindTaskCheckBox:
		p.taskCheckbox(node.(*extast.TaskCheckBox))
	}

	return ast.WalkContinue
}

func (p *promptRenderer) leave(node ast.Node) {
	switch node.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		if flushed := p.flushFlow(); flushed != "" {
			p.emit(flushed)
			p.breakLine()
			if !p.tightList() {
				p.blankLine()
			}
		}

	case ast.KindHeading:
		p.closeHeading(node.(*ast.Heading))

	case ast.KindBlockquote:
		p.popIndent()
		p.blankLine()

	case ast.KindList:
		p.closeList()

	case ast.KindListItem:
		p.closeItem()

	case ast.KindEmphasis:
		p.emphasisShift(node.(*ast.Emphasis), -1)

	case extast.KindStrikethrough:
		p.emphasis.strike--
	}
}

func (p *promptRenderer) closeHeading(heading *ast.Heading) {
	// Headings restyle the whole line, so drop the inline styling
	// styled() collected.
	content := ansi.Strip(p.flow.String())
	p.flow.Reset()
	if content == "" {
		return
	}

	style := p.style().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(p.theme.HeaderForeground)
	} else {
		style = style.Foreground(p.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), p.wrapWidth(), " ,.;-+|")
	p.blankLine()
	p.emit(p.indentLines(wrapped))
	p.breakLine()
	p.blankLine()
}

// rawCode joins the raw source lines spanned by a code block node.
func (p *promptRenderer) rawCode(node ast.Node) string {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(p.source))
	}
	return code.String()
}

func (p *promptRenderer) emitCodeLines(code string) {
	p.blankLine()
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		p.emit(p.takeIndent() + line)
		p.breakLine()
	}
	p.blankLine()
}

func (p *promptRenderer) fencedCode(node *ast.FencedCodeBlock) {
	language := string(node.Language(p.source))
	p.emitCodeLines(p.highlight(p.rawCode(node), language))
}

func (p *promptRenderer) indentedCode(node *ast.CodeBlock) {
	faint := p.style().Foreground(p.theme.FaintText)

	p.blankLine()
	for _, line := range strings.Split(strings.TrimRight(p.rawCode(node), "\n"), "\n") {
		p.emit(p.takeIndent() + faint.Render(line))
		p.breakLine()
	}
	p.blankLine()
}

func (p *promptRenderer) openList(list *ast.List) {
	level := listFrame{numbered: list.IsOrdered(), tight: list.IsTight}
	if level.numbered {
		level.next = list.Start
	}
	p.lists = append(p.lists, level)
}

func (p *promptRenderer) closeList() {
	if len(p.lists) > 0 {
		p.lists = p.lists[:len(p.lists)-1]
	}
	if !p.tightList() {
		p.blankLine()
	}
}

func (p *promptRenderer) openItem() {
	if len(p.lists) == 0 {
		return
	}
	level := &p.lists[len(p.lists)-1]

	bullet := "- "
	if level.numbered {
		bullet = fmt.Sprintf("%d. ", level.next)
		level.next++
	}

	hang := len(bullet) // ASCII bullets, byte length == visual width

	// The bullet replaces the whole indent on the item's first line;
	// continuation lines hang under it.
	p.bullet = p.indent + bullet
	p.pushIndent(strings.Repeat(" ", hang), hang)
}

func (p *promptRenderer) closeItem() {
	p.popIndent()
	if p.tightList() {
		p.breakLine()
	} else {
		p.blankLine()
	}
}

func (p *promptRenderer) horizontalRule() {
	rule := p.style().Foreground(p.theme.BorderColor).
		Render(strings.Repeat("─", p.wrapWidth()))
	p.blankLine()
	p.emit(p.indentLines(rule))
	p.breakLine()
	p.blankLine()
}

func (p *promptRenderer) text(node *ast.Text) {
	p.flow.WriteString(p.styled(string(node.Segment.Value(p.source))))

	if node.SoftLineBreak() {
		// Soft breaks become spaces so hard-wrapped source reflows.
		p.flow.WriteString(" ")
	}
	if node.HardLineBreak() {
		p.flow.WriteString("\n")
	}
}

func (p *promptRenderer) emphasisShift(node *ast.Emphasis, delta int) {
	if node.Level >= 2 {
		p.emphasis.bold += delta
	} else {
		p.emphasis.italic += delta
	}
}

func (p *promptRenderer) codeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(p.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	p.flow.WriteString(p.style().Foreground(p.theme.FaintText).Render(code.String()))
}

func (p *promptRenderer) link(node *ast.Link) {
	// collectInline already styles the link text.
	p.flow.WriteString(p.collectInline(node))
	if url := string(node.Destination); url != "" {
		faint := p.style().Foreground(p.theme.FaintText)
		p.flow.WriteString(" " + faint.Render("("+url+")"))
	}
}

func (p *promptRenderer) taskCheckbox(checkbox *extast.TaskCheckBox) {
	if checkbox.IsChecked {
		check := p.style().Foreground(p.theme.RunSuccess)
		p.flow.WriteString(check.Render("[x]") + " ")
	} else {
		p.flow.WriteString(p.styled("[ ] "))
	}
}

// table renders a GFM table as plain pipe-separated rows. Job prompts
// rarely carry tables, so legibility wins over column alignment.
func (p *promptRenderer) table(node ast.Node) {
	var rows []string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader, extast.KindTableRow:
			var cells []string
			for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, strings.TrimSpace(p.collectInline(cell)))
			}
			rows = append(rows, strings.Join(cells, " │ "))
		}
	}
	if len(rows) == 0 {
		return
	}

	p.blankLine()
	for _, row := range rows {
		p.emit(p.indentLines(row))
		p.breakLine()
	}
	p.blankLine()
}
