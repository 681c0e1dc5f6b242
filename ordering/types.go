package ordering

// EntityType is the classification of a body line, and of the feature it belongs to.
type EntityType int

const (
	Unknown EntityType = iota
	BlankLine
	MultiLineComment
	MainConstructor
	NamedConstructor
	StaticVariable
	StaticPrivateVariable
	InstanceVariable
	PrivateInstanceVariable
	OverrideVariable
	OverrideMethod
	BuildMethod
	GetterMethod
	OtherMethod
	PrivateOtherMethod
)

var entityNames = [...]string{
	Unknown:                 "Unknown",
	BlankLine:               "BlankLine",
	MultiLineComment:        "MultiLineComment",
	MainConstructor:         "MainConstructor",
	NamedConstructor:        "NamedConstructor",
	StaticVariable:          "StaticVariable",
	StaticPrivateVariable:   "StaticPrivateVariable",
	InstanceVariable:        "InstanceVariable",
	PrivateInstanceVariable: "PrivateInstanceVariable",
	OverrideVariable:        "OverrideVariable",
	OverrideMethod:          "OverrideMethod",
	BuildMethod:             "BuildMethod",
	GetterMethod:            "GetterMethod",
	OtherMethod:             "OtherMethod",
	PrivateOtherMethod:      "PrivateOtherMethod",
}

func (e EntityType) String() string {
	if e < 0 || int(e) >= len(entityNames) {
		return "Unknown"
	}
	return entityNames[e]
}

// Order is a bucket name, it's an alias of string.
type Order = string

const (
	PublicConstructor        Order = "public-constructor"
	NamedConstructors        Order = "named-constructors"
	PublicStaticVariables    Order = "public-static-variables"
	PublicInstanceVariables  Order = "public-instance-variables"
	PublicOverrideVariables  Order = "public-override-variables"
	PublicOverrideMethods    Order = "public-override-methods"
	PublicOtherMethods       Order = "public-other-methods"
	PrivateStaticVariables   Order = "private-static-variables"
	PrivateInstanceVariables Order = "private-instance-variables"
	PrivateOtherMethods      Order = "private-other-methods"
	BuildMethodOrder         Order = "build-method"

	// unclassified collects features that no rule recognized. It is not
	// configurable and always comes last.
	unclassified Order = "unclassified"
)

// DefaultOrder is the member ordering used when none is configured. It also
// lists every accepted bucket name.
var DefaultOrder = []Order{
	PublicConstructor,
	NamedConstructors,
	PublicStaticVariables,
	PublicInstanceVariables,
	PublicOverrideVariables,
	PublicOverrideMethods,
	PublicOtherMethods,
	PrivateStaticVariables,
	PrivateInstanceVariables,
	PrivateOtherMethods,
	BuildMethodOrder,
}

// bucketOf maps each declaration type to the bucket it is rendered in.
var bucketOf = map[EntityType]Order{
	Unknown:                 unclassified,
	MainConstructor:         PublicConstructor,
	NamedConstructor:        NamedConstructors,
	StaticVariable:          PublicStaticVariables,
	InstanceVariable:        PublicInstanceVariables,
	OverrideVariable:        PublicOverrideVariables,
	OverrideMethod:          PublicOverrideMethods,
	GetterMethod:            PublicOtherMethods,
	OtherMethod:             PublicOtherMethods,
	StaticPrivateVariable:   PrivateStaticVariables,
	PrivateInstanceVariable: PrivateInstanceVariables,
	PrivateOtherMethod:      PrivateOtherMethods,
	BuildMethod:             BuildMethodOrder,
}

// Line is one physical line of a class body. Text never contains the "\n"
// terminator but keeps a trailing "\r" for CRLF sources.
type Line struct {
	Text  string
	Index int // 0-based line number in the source buffer
	Type  EntityType
}

// Feature is a run of lines that moves as a whole: a declaration with its
// attached comments and annotations, a standalone comment block, or a blank line.
type Feature struct {
	Type  EntityType
	Name  string
	Lines []*Line

	// multiline is true when the declaration itself (comments and
	// annotations excluded) spans more than one line.
	multiline bool

	// unterminated declarations were closed by a blank line, not by ';' or '}'.
	unterminated bool
}

// Class is a class declaration found in a source buffer.
type Class struct {
	Name string

	// Start is the offset just after the opening brace, End the offset of
	// the closing brace. src[Start:End] is the body.
	Start int
	End   int

	// OpenLine is the 0-based line of the opening brace.
	OpenLine int

	Features []*Feature

	body string
	head string // rest of the opening brace line
	crlf bool

	// fixed bodies are kept as they are: code shares a line with a brace
	// or the body fits on one line.
	fixed bool
}

// Config is the reordering policy.
type Config struct {
	MemberOrdering            []Order `yaml:"order" validate:"unique,dive,oneof=public-constructor named-constructors public-static-variables public-instance-variables public-override-variables public-override-methods public-other-methods private-static-variables private-instance-variables private-other-methods build-method"`
	GroupAndSortGetterMethods bool    `yaml:"group-getters"`
	SortOtherMethods          bool    `yaml:"sort-methods"`
	SeparatePrivateMethods    bool    `yaml:"separate-private"`
	Verbose                   bool    `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	order := make([]Order, len(DefaultOrder))
	copy(order, DefaultOrder)
	return Config{MemberOrdering: order}
}

// ReorderConfig is the configuration for the ReorderSource function.
type ReorderConfig struct {
	Filename string
	Src      []byte
	Diff     bool
	Config   Config
}

// Edit replaces src[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string

	Class string
	Line  int // 1-based line of the class opening brace
}

// ClassifiedLine is a body line with the classification of its feature.
type ClassifiedLine struct {
	Text  string
	Line  int
	Type  EntityType
	Class string
}
