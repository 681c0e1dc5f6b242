package ordering

import (
	"strings"
)

// FindFeatures splits the body of class into classified features and stores
// them in class.Features. Every body line after the opening brace line
// belongs to exactly one feature; the last line is the text before the
// closing brace.
func FindFeatures(src string, class *Class, cfg Config) ([]*Feature, error) {
	body := src[class.Start:class.End]
	infos, t, negative := scanLines(body)

	if negative >= 0 {
		return nil, &ParseError{
			Kind:  ErrUnbalanced,
			Line:  class.OpenLine + negative + 1,
			Class: class.Name,
			Msg:   "closing bracket without a matching opening one",
		}
	}
	if t.open() {
		return nil, &ParseError{
			Kind:  ErrUnterminated,
			Line:  class.OpenLine + len(infos),
			Class: class.Name,
			Msg:   "string or comment is still open at the end of the class body",
		}
	}
	if t.depth() != 0 {
		return nil, &ParseError{
			Kind:  ErrUnbalanced,
			Line:  class.OpenLine + len(infos),
			Class: class.Name,
			Msg:   "parenthesis or bracket is still open at the end of the class body",
		}
	}

	class.body = body
	class.Features = nil
	if len(infos) < 2 {
		// "class A {}" and other single line bodies
		class.fixed = true
		return nil, nil
	}

	head := &infos[0]
	class.head = head.text
	class.crlf = strings.HasSuffix(head.text, "\r")
	class.fixed = head.hasCode || !head.endClean || !infos[len(infos)-1].blank()

	b := &featureBuilder{
		class: class,
		cfg:   cfg,
		infos: infos,
	}
	for i := 1; i < len(infos); i++ {
		b.add(i)
	}
	b.finish()

	class.Features = b.features
	return b.features, nil
}

// featureBuilder groups lines going forward. Comments and annotations wait
// in pending until the declaration they belong to shows up.
type featureBuilder struct {
	class *Class
	cfg   Config
	infos []lineInfo

	features []*Feature

	pending     []int
	pendingOpen bool // an annotation argument list spans the line end

	decl      *Feature
	declLines []int // line numbers of the declaration, annotations excluded
	declFrom  []int // pending line numbers attached to the declaration
}

func (b *featureBuilder) line(i int) *Line {
	return &Line{Text: b.infos[i].text, Index: b.class.OpenLine + i}
}

func (b *featureBuilder) add(i int) {
	info := &b.infos[i]
	atMember := info.startDepth == 0 && !info.startOpen

	if b.decl != nil {
		if info.blank() && atMember {
			b.decl.unterminated = true
			b.closeDecl()
			b.blank(i)
			return
		}
		b.decl.Lines = append(b.decl.Lines, b.line(i))
		b.declLines = append(b.declLines, i)
		if info.endClean && terminates(info) {
			b.closeDecl()
		}
		return
	}

	if b.pendingOpen {
		b.pending = append(b.pending, i)
		b.pendingOpen = !info.endClean
		return
	}

	switch {
	case !info.hasCode && !atMember:
		// inside a block comment
		b.pending = append(b.pending, i)
	case info.blank():
		b.flushPending()
		b.blank(i)
	case !info.hasCode:
		b.pending = append(b.pending, i)
	case annotationOnly(info):
		b.pending = append(b.pending, i)
		b.pendingOpen = !info.endClean
	default:
		b.openDecl(i)
		if info.endClean && terminates(info) {
			b.closeDecl()
		}
	}
}

func terminates(info *lineInfo) bool {
	c := info.lastCode()
	return c == ';' || c == '}'
}

func annotationOnly(info *lineInfo) bool {
	names, rest, open := splitAnnotations(info.code)
	return len(names) > 0 && (rest == "" || open)
}

func (b *featureBuilder) openDecl(i int) {
	f := &Feature{}
	for _, p := range b.pending {
		f.Lines = append(f.Lines, b.line(p))
	}
	f.Lines = append(f.Lines, b.line(i))
	b.decl = f
	b.declFrom = b.pending
	b.declLines = []int{i}
	b.pending = nil
}

func (b *featureBuilder) closeDecl() {
	f := b.decl
	var annotations []string
	for _, p := range b.declFrom {
		names, _, _ := splitAnnotations(b.infos[p].code)
		annotations = append(annotations, names...)
	}
	codes := make([]string, 0, len(b.declLines))
	for _, i := range b.declLines {
		codes = append(codes, b.infos[i].code)
	}
	f.Type, f.Name = classify(b.class.Name, annotations, codes, b.cfg)
	f.multiline = len(b.declLines) > 1
	b.push(f)
	b.decl = nil
	b.declLines = nil
	b.declFrom = nil
}

func (b *featureBuilder) flushPending() {
	if len(b.pending) == 0 {
		return
	}
	f := &Feature{Type: MultiLineComment}
	for _, p := range b.pending {
		f.Lines = append(f.Lines, b.line(p))
	}
	b.pending = nil
	b.pendingOpen = false
	b.push(f)
}

func (b *featureBuilder) blank(i int) {
	b.push(&Feature{Type: BlankLine, Lines: []*Line{b.line(i)}})
}

func (b *featureBuilder) push(f *Feature) {
	for _, l := range f.Lines {
		l.Type = f.Type
	}
	b.features = append(b.features, f)
}

func (b *featureBuilder) finish() {
	if b.decl != nil {
		b.decl.unterminated = true
		b.closeDecl()
	}
	b.flushPending()
}
