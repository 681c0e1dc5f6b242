package ordering

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseClass returns the features of the only class of src.
func parseClass(t *testing.T, src string, cfg Config) (*Class, []*Feature) {
	t.Helper()
	classes, errs := FindClasses(src)
	require.Empty(t, errs)
	require.Len(t, classes, 1)
	features, err := FindFeatures(src, classes[0], cfg)
	require.NoError(t, err)
	return classes[0], features
}

func wrap(body string) string {
	return "class Foo {\n" + body + "\n}\n"
}

func TestClassification(t *testing.T) {
	separate := DefaultConfig()
	separate.SeparatePrivateMethods = true

	tests := []struct {
		decl  string
		cfg   Config
		typ   EntityType
		name  string
		lines int
	}{
		{decl: "  Foo();", typ: MainConstructor, name: "Foo"},
		{decl: "  const Foo({required this.a, this.b = 2});", typ: MainConstructor, name: "Foo"},
		{decl: "  factory Foo(int a) = _FooImpl;", typ: MainConstructor, name: "Foo"},
		{decl: "  Foo.named(this.a);", typ: NamedConstructor, name: "named"},
		{decl: "  Foo.empty() : a = 0;", typ: NamedConstructor, name: "empty"},
		{decl: "  factory Foo.fromJson(Map<String, dynamic> json) => Foo();", typ: NamedConstructor, name: "fromJson"},
		{decl: "  static const int max = 3;", typ: StaticVariable, name: "max"},
		{decl: "  static final _cache = <String, int>{};", typ: StaticPrivateVariable, name: "_cache"},
		{decl: "  final String name;", typ: InstanceVariable, name: "name"},
		{decl: "  int a = 1, b = 2;", typ: InstanceVariable, name: "a"},
		{decl: "  Map<String, List<int>> data = {};", typ: InstanceVariable, name: "data"},
		{decl: "  void Function(int value) onTap;", typ: InstanceVariable, name: "onTap"},
		{decl: "  (int, String) pair = (1, 'a');", typ: InstanceVariable, name: "pair"},
		{decl: "  late final List<int> _items;", typ: PrivateInstanceVariable, name: "_items"},
		{decl: "  @override\n  final int x = 1;", typ: OverrideVariable, name: "x", lines: 2},
		{decl: "  int get count => _count;", typ: GetterMethod, name: "count"},
		{decl: "  static Foo get instance => _instance;", typ: GetterMethod, name: "instance"},
		{decl: "  bool get isEmpty {\n    return true;\n  }", typ: GetterMethod, name: "isEmpty", lines: 3},
		{decl: "  @override\n  int get hashCode => 1;", typ: OverrideMethod, name: "hashCode", lines: 2},
		{decl: "  @override String toString() => 'Foo';", typ: OverrideMethod, name: "toString"},
		{decl: "  @override\n  Widget build(BuildContext context) => Text('');", typ: OverrideMethod, name: "build", lines: 2},
		{decl: "  Widget build(BuildContext context) {\n    return Text('');\n  }", typ: BuildMethod, name: "build", lines: 3},
		{decl: "  set count(int v) => _count = v;", typ: OtherMethod, name: "count"},
		{decl: "  bool operator ==(Object other) => false;", typ: OtherMethod, name: "operator=="},
		{decl: "  static Foo create() => Foo();", typ: OtherMethod, name: "create"},
		{decl: "  Future<void> load() async {\n    await x;\n  }", typ: OtherMethod, name: "load", lines: 3},
		{decl: "  void _reset() {}", typ: OtherMethod, name: "_reset"},
		{decl: "  void _reset() {}", cfg: separate, typ: PrivateOtherMethod, name: "_reset"},
		{decl: "  @Deprecated('use other')\n  void old() {}", typ: OtherMethod, name: "old", lines: 2},
		{decl: "  /// The count.\n  int count = 0;", typ: InstanceVariable, name: "count", lines: 2},
		{decl: "  /*\n   * Block.\n   */\n  int count = 0;", typ: InstanceVariable, name: "count", lines: 4},
		{decl: "  @JsonKey(\n    name: 'x',\n  )\n  final int x;", typ: InstanceVariable, name: "x", lines: 4},
		{decl: "  int get x =>\n      1;", typ: GetterMethod, name: "x", lines: 2},
	}
	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			cfg := tt.cfg
			if cfg.MemberOrdering == nil {
				cfg = DefaultConfig()
			}
			_, features := parseClass(t, wrap(tt.decl), cfg)
			require.Len(t, features, 2, "declaration and closing line")
			f := features[0]
			assert.Equal(t, tt.typ, f.Type)
			assert.Equal(t, tt.name, f.Name)
			lines := tt.lines
			if lines == 0 {
				lines = 1
			}
			assert.Len(t, f.Lines, lines)
			for _, l := range f.Lines {
				assert.Equal(t, tt.typ, l.Type)
			}
			assert.Equal(t, BlankLine, features[1].Type)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	typ, name := classify("Foo", nil, []string{"static;"}, DefaultConfig())
	assert.Equal(t, Unknown, typ)
	assert.Empty(t, name)
}

func TestMethodBodyIsOneFeature(t *testing.T) {
	src := wrap("  void f() {\n    int x = 1;\n    if (x > 0) {\n      x = 2;\n    }\n  }\n  int y = 0;")
	_, features := parseClass(t, src, DefaultConfig())
	require.Len(t, features, 3)
	assert.Equal(t, OtherMethod, features[0].Type)
	assert.Len(t, features[0].Lines, 6)
	assert.True(t, features[0].multiline)
	assert.Equal(t, InstanceVariable, features[1].Type)
	assert.Equal(t, "y", features[1].Name)
}

func TestAnnotationFollowedByBlankLine(t *testing.T) {
	_, features := parseClass(t, wrap("  @override\n\n  int x = 0;"), DefaultConfig())
	require.Len(t, features, 4)
	assert.Equal(t, MultiLineComment, features[0].Type)
	assert.Equal(t, BlankLine, features[1].Type)
	assert.Equal(t, InstanceVariable, features[2].Type)
}

func TestStandaloneComments(t *testing.T) {
	_, features := parseClass(t, wrap("  // one\n  // two\n\n  int x = 0;\n  // trailing"), DefaultConfig())
	types := []EntityType{}
	for _, f := range features {
		types = append(types, f.Type)
	}
	assert.Equal(t, []EntityType{
		MultiLineComment, BlankLine, InstanceVariable, MultiLineComment, BlankLine,
	}, types)
	assert.Len(t, features[0].Lines, 2)
}

func TestUnterminatedDeclaration(t *testing.T) {
	_, features := parseClass(t, wrap("  int a = 1\n\n  int b;"), DefaultConfig())
	require.Len(t, features, 4)
	assert.Equal(t, InstanceVariable, features[0].Type)
	assert.True(t, features[0].unterminated)
	assert.False(t, features[2].unterminated)
}

func TestTailLine(t *testing.T) {
	// the indentation before the closing brace is the last feature
	src := "class Foo {\n  int a;\n  }\n"
	_, features := parseClass(t, src, DefaultConfig())
	require.Len(t, features, 2)
	assert.Equal(t, BlankLine, features[1].Type)
	assert.Equal(t, "  ", features[1].Lines[0].Text)
}

func TestLineIndexes(t *testing.T) {
	src := "import 'a.dart';\n\nclass Foo {\n  int a;\n\n  void f() {}\n}\n"
	_, features := parseClass(t, src, DefaultConfig())
	var indexes []int
	for _, f := range features {
		for _, l := range f.Lines {
			indexes = append(indexes, l.Index)
		}
	}
	assert.Equal(t, []int{3, 4, 5, 6}, indexes)
}

func TestFixedClasses(t *testing.T) {
	for _, src := range []string{
		"class Foo { int b; int a; }\n",
		"class Foo { int b;\n  int a;\n}\n",
		"class Foo {\n  int b;\n  int a; }\n",
		"class Foo {}\n",
	} {
		class, _ := parseClass(t, src, DefaultConfig())
		assert.True(t, class.fixed, src)
		assert.Equal(t, src[class.Start:class.End], Reorder(class, DefaultConfig()), src)
	}
}

func TestFindFeaturesErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind error
		line int
	}{
		{src: "class Foo {\n  int a = (1;\n}\n", kind: ErrUnbalanced, line: 3},
		{src: "class Foo {\n  int a = [1;\n  int b;\n}\n", kind: ErrUnbalanced, line: 4},
		{src: "class Foo {\n  int a = 1);\n}\n", kind: ErrUnbalanced, line: 2},
	}
	for _, tt := range tests {
		classes, errs := FindClasses(tt.src)
		require.Empty(t, errs)
		require.Len(t, classes, 1)
		_, err := FindFeatures(tt.src, classes[0], DefaultConfig())
		require.Error(t, err, tt.src)
		assert.True(t, errors.Is(err, tt.kind), tt.src)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, tt.line, perr.Line, tt.src)
		assert.Equal(t, "Foo", perr.Class)
	}
}

func TestClassificationLineEndings(t *testing.T) {
	src := wrap(strings.Join([]string{
		"  /// Doc.",
		"  @override",
		"  Widget build(BuildContext context) {",
		"    return Text('');",
		"  }",
		"",
		"  // standalone",
		"",
		"  static const a = 1;",
		"  Foo();",
	}, "\n"))
	crlf := strings.ReplaceAll(src, "\n", "\r\n")

	lf, err := Classify(src, DefaultConfig())
	require.NoError(t, err)
	cr, err := Classify(crlf, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, len(lf), len(cr))
	for i := range lf {
		assert.Equal(t, lf[i].Type, cr[i].Type, lf[i].Text)
		assert.Equal(t, lf[i].Line, cr[i].Line)
		assert.Equal(t, lf[i].Text, strings.TrimSuffix(cr[i].Text, "\r"))
	}
}

func TestMultiLineConstructor(t *testing.T) {
	_, features := parseClass(t, "class A {\n  A() {\n    init();\n  }\n}\n", DefaultConfig())
	require.Len(t, features, 2)
	assert.Equal(t, MainConstructor, features[0].Type)
	assert.Len(t, features[0].Lines, 3)
	assert.Equal(t, BlankLine, features[1].Type)
}

func TestStaticPrivateField(t *testing.T) {
	_, features := parseClass(t, "class A {\n  static int _count = 0;\n}\n", DefaultConfig())
	assert.Equal(t, StaticPrivateVariable, features[0].Type)
	assert.Equal(t, "_count", features[0].Name)
}

func TestClassNameInsideBodyIsNotConstructor(t *testing.T) {
	src := `class TypeDef {
  TypeDef.fromToken(this.token);

  static TypeDef parse(String s) {
    return TypeDef.fromToken(s);
  }

  TypeDef copy() {
    final other = TypeDef.fromToken(token);
    return other;
  }

  final String token;
}
`
	_, features := parseClass(t, src, DefaultConfig())
	var types []EntityType
	for _, f := range features {
		if f.Type != BlankLine {
			types = append(types, f.Type)
		}
	}
	assert.Equal(t, []EntityType{NamedConstructor, OtherMethod, OtherMethod, InstanceVariable}, types)
}

func TestAnnotationSpanningLines(t *testing.T) {
	src := "class A {\n  @Deprecated('use other '\n      'instead')\n  void old() {}\n}\n"
	_, features := parseClass(t, src, DefaultConfig())
	require.Len(t, features, 2)
	assert.Equal(t, OtherMethod, features[0].Type)
	assert.Equal(t, "old", features[0].Name)
	assert.Len(t, features[0].Lines, 3)
	assert.False(t, features[0].multiline)
}
