package output

import (
	"strings"
)

var indentWith = "  "

// EmittedLine represents a line being emitted
type EmittedLine struct {
	Parts  []string
	Indent int
}

// NewEmittedLine creates a new EmittedLine
func NewEmittedLine(indent int) *EmittedLine {
	return &EmittedLine{
		Parts:  []string{},
		Indent: indent,
	}
}

// EmitterContext represents the context for emitting code
type EmitterContext struct {
	lines  []*EmittedLine
	indent int
}

// NewEmitterContext creates a new EmitterContext at indent zero
func NewEmitterContext() *EmitterContext {
	return &EmitterContext{
		lines: []*EmittedLine{NewEmittedLine(0)},
	}
}

// currentLine returns the current line being built
func (ctx *EmitterContext) currentLine() *EmittedLine {
	return ctx.lines[len(ctx.lines)-1]
}

// LineIsEmpty checks if the current line is empty
func (ctx *EmitterContext) LineIsEmpty() bool {
	return len(ctx.currentLine().Parts) == 0
}

// Print appends a part to the current line
func (ctx *EmitterContext) Print(part string) {
	if len(part) > 0 {
		line := ctx.currentLine()
		line.Parts = append(line.Parts, part)
	}
}

// Println appends a part to the current line and starts a new line
func (ctx *EmitterContext) Println(part string) {
	ctx.Print(part)
	ctx.lines = append(ctx.lines, NewEmittedLine(ctx.indent))
}

// BlankLine emits an empty line
func (ctx *EmitterContext) BlankLine() {
	if !ctx.LineIsEmpty() {
		ctx.Println("")
	}
	ctx.Println("")
}

// PrintVerbatim appends multi-line text without applying indentation to the
// continuation lines, so embedded payloads keep their exact bytes
func (ctx *EmitterContext) PrintVerbatim(text string) {
	segments := strings.Split(text, "\n")
	for i, segment := range segments {
		if i > 0 {
			ctx.lines = append(ctx.lines, NewEmittedLine(0))
		}
		ctx.Print(segment)
	}
}

// IncIndent increases the indent
func (ctx *EmitterContext) IncIndent() {
	ctx.indent++
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// DecIndent decreases the indent
func (ctx *EmitterContext) DecIndent() {
	ctx.indent--
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// ToSource converts the context to source code
func (ctx *EmitterContext) ToSource() string {
	var sb strings.Builder
	for _, line := range ctx.sourceLines() {
		if len(line.Parts) > 0 {
			sb.WriteString(createIndent(line.Indent))
			sb.WriteString(strings.Join(line.Parts, ""))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// sourceLines returns the emitted lines (excluding an empty last line)
func (ctx *EmitterContext) sourceLines() []*EmittedLine {
	if len(ctx.lines) > 0 && len(ctx.lines[len(ctx.lines)-1].Parts) == 0 {
		return ctx.lines[:len(ctx.lines)-1]
	}
	return ctx.lines
}

// createIndent creates an indent string
func createIndent(count int) string {
	return strings.Repeat(indentWith, count)
}
