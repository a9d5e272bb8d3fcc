package mdx

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ColorAttr picks which part of the rendered tree a color applies to.
type ColorAttr int

const (
	FieldColor ColorAttr = iota
	TypeColor
	StringColor
	NumberColor
	BoolColor
	DatetimeColor
	NullColor
	BytesColor
)

// Colors maps render attributes to sprintf-style colorizers. A nil Colors
// renders plain text.
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

// NewColors returns the default palette.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[FieldColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[TypeColor] = color.RGB(74, 92, 138).SprintfFunc()
	colors.Map[StringColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[NumberColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[BoolColor] = color.CyanString
	colors.Map[DatetimeColor] = color.RGB(198, 198, 46).SprintfFunc()
	colors.Map[NullColor] = color.RGB(168, 0, 196).SprintfFunc()
	colors.Map[BytesColor] = color.RGB(96, 96, 96).SprintfFunc()
	return colors
}

func (c *Colors) paint(attr ColorAttr, f string, args ...any) string {
	if c == nil {
		return fmt.Sprintf(f, args...)
	}
	if fn, ok := c.Map[attr]; ok {
		return fn(f, args...)
	}
	return c.Default(f, args...)
}

// Fprint renders an element tree to w, one field per line, children
// indented under their parent.
func Fprint(w io.Writer, e Element, colors *Colors) error {
	p := &printer{w: w, colors: colors}
	p.element(e, 0)
	return p.err
}

func sprintElement(e Element) string {
	var b strings.Builder
	Fprint(&b, e, nil)
	return b.String()
}

type printer struct {
	w      io.Writer
	colors *Colors
	err    error
}

func (p *printer) printf(f string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, f, args...)
}

func (p *printer) element(e Element, depth int) {
	indent := strings.Repeat("    ", depth)
	label := p.colors.paint(FieldColor, "%s", e.Name().String())
	switch {
	case e.IsComplexType():
		p.printf("%s%s = %s {\n", indent, label,
			p.colors.paint(TypeColor, "%s", e.Datatype()))
		for child := range e.Elements() {
			p.element(child, depth+1)
		}
		p.printf("%s}\n", indent)
	case e.IsArray():
		p.printf("%s%s[] = %s {\n", indent, label,
			p.colors.paint(TypeColor, "%s", e.Datatype()))
		p.arrayValues(e, depth+1)
		p.printf("%s}\n", indent)
	default:
		p.printf("%s%s = %s\n", indent, label, p.scalar(e, 0))
	}
}

func (p *printer) arrayValues(e Element, depth int) {
	indent := strings.Repeat("    ", depth)
	if e.Datatype() == DatatypeSequence || e.Datatype() == DatatypeChoice {
		for i := 0; i < e.NumValues(); i++ {
			entry, err := GetAt[Element](e, i)
			if err != nil {
				p.printf("%s<error: %v>\n", indent, err)
				return
			}
			p.printf("%s{\n", indent)
			for child := range entry.Elements() {
				p.element(child, depth+1)
			}
			p.printf("%s}\n", indent)
		}
		return
	}
	for i := 0; i < e.NumValues(); i++ {
		p.printf("%s%s\n", indent, p.scalar(e, i))
	}
}

func (p *printer) scalar(e Element, index int) string {
	if null, err := e.IsNullValue(index); err != nil || null {
		return p.colors.paint(NullColor, "null")
	}
	switch e.Datatype() {
	case DatatypeBool:
		v, err := GetAt[bool](e, index)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return p.colors.paint(BoolColor, "%t", v)
	case DatatypeChar, DatatypeByte, DatatypeInt32, DatatypeInt64,
		DatatypeFloat32, DatatypeFloat64, DatatypeDecimal:
		v, err := GetAt[string](e, index)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return p.colors.paint(NumberColor, "%s", v)
	case DatatypeDate, DatatypeTime, DatatypeDatetime:
		v, err := GetAt[Datetime](e, index)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return p.colors.paint(DatetimeColor, "%s", v)
	case DatatypeBytearray:
		v, err := GetAt[[]byte](e, index)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return p.colors.paint(BytesColor, "0x%x", v)
	default:
		v, err := GetAt[string](e, index)
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return p.colors.paint(StringColor, "%q", v)
	}
}
