package ordering

import "strings"

// modifiers may precede a member declaration and never name it.
var modifiers = map[string]bool{
	"abstract":  true,
	"const":     true,
	"covariant": true,
	"external":  true,
	"factory":   true,
	"final":     true,
	"late":      true,
	"static":    true,
	"var":       true,
}

// splitAnnotations removes the leading "@name" and "@name(...)" annotations
// of a masked code line. open is true when the argument list of the last
// annotation continues on the next line.
func splitAnnotations(code string) (names []string, rest string, open bool) {
	s := strings.TrimSpace(code)
	for strings.HasPrefix(s, "@") {
		i := 1
		for i < len(s) && (isIdentChar(s[i]) || s[i] == '.') {
			i++
		}
		if i == 1 {
			return names, s, false
		}
		names = append(names, s[1:i])
		if i < len(s) && s[i] == '(' {
			depth := 0
			j := i
			for ; j < len(s); j++ {
				if s[j] == '(' {
					depth++
				} else if s[j] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if j >= len(s) {
				return names, "", true
			}
			i = j + 1
		}
		s = strings.TrimSpace(s[i:])
	}
	return names, s, false
}

// header is the start of a declaration, read up to the first token that
// tells a field from a callable.
type header struct {
	tokens []string // identifiers and "." at the top level
	stop   string   // "(", "=", "=>", ";", "{", ":", "," or "" when none
}

// parseHeader tokenizes a masked declaration. Type arguments, function
// types and record types are skipped.
func parseHeader(code string) header {
	var h header
	s := code
	angle := 0
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isIdentChar(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			word := s[i:j]
			i = j
			if angle > 0 {
				continue
			}
			h.tokens = append(h.tokens, word)
			if word == "operator" {
				// "operator ==", "operator []=", ...
				for i < len(s) && s[i] == ' ' {
					i++
				}
				k := i
				for k < len(s) && s[k] != '(' && s[k] != ' ' {
					k++
				}
				h.tokens[len(h.tokens)-1] = "operator" + s[i:k]
				i = k
			}
		case c == '<':
			angle++
			i++
		case c == '>' && angle > 0:
			angle--
			i++
		case angle > 0:
			i++
		case c == '(':
			if typeGroup(h.tokens) {
				i = skipGroup(s, i)
				h.tokens = append(h.tokens, "()")
				continue
			}
			h.stop = "("
			return h
		case c == '=':
			if i+1 < len(s) && s[i+1] == '>' {
				h.stop = "=>"
			} else {
				h.stop = "="
			}
			return h
		case c == ';' || c == '{' || c == ':' || c == ',':
			h.stop = string(c)
			return h
		case c == '.':
			h.tokens = append(h.tokens, ".")
			i++
		default:
			i++
		}
	}
	return h
}

// typeGroup reports whether a "(" following tokens opens a type (a record
// type or a Function parameter list) rather than a parameter list.
func typeGroup(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last == "Function" || modifiers[last]
}

func skipGroup(s string, i int) int {
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

// classify returns the type and member name of a declaration given its
// annotations and masked code lines.
func classify(className string, annotations []string, codes []string, cfg Config) (EntityType, string) {
	inline, first, _ := splitAnnotations(codes[0])
	annotations = append(annotations, inline...)
	override := false
	for _, a := range annotations {
		if a == "override" {
			override = true
		}
	}

	h := parseHeader(first + " " + strings.Join(codes[1:], " "))
	static := false
	words := h.tokens
	for len(words) > 0 && modifiers[words[0]] {
		if words[0] == "static" {
			static = true
		}
		words = words[1:]
	}
	if len(words) == 0 {
		return Unknown, ""
	}

	// constructors: "Name(" and "Name.named("
	if !static && h.stop == "(" && words[0] == className {
		switch {
		case len(words) == 1:
			return MainConstructor, className
		case len(words) == 3 && words[1] == ".":
			return NamedConstructor, words[2]
		}
	}

	for i := 0; i+1 < len(words); i++ {
		if words[i] == "get" && words[i+1] != "." {
			name := words[i+1]
			if override {
				return OverrideMethod, name
			}
			return GetterMethod, name
		}
	}

	switch h.stop {
	case "(":
		name := words[len(words)-1]
		switch {
		case override:
			return OverrideMethod, name
		case name == "build":
			return BuildMethod, name
		case cfg.SeparatePrivateMethods && strings.HasPrefix(name, "_"):
			return PrivateOtherMethod, name
		}
		return OtherMethod, name
	case "=", ";", ",", "":
		name := words[len(words)-1]
		if name == "." || name == "()" {
			return Unknown, ""
		}
		private := strings.HasPrefix(name, "_")
		switch {
		case override:
			return OverrideVariable, name
		case static && private:
			return StaticPrivateVariable, name
		case static:
			return StaticVariable, name
		case private:
			return PrivateInstanceVariable, name
		}
		return InstanceVariable, name
	}
	return Unknown, ""
}
