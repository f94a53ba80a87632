// Package builtin implements CEL's ten built-in functions and the
// registry the evaluator consults for them. Grounded on the teacher's
// std/builtins.go (a name-to-callback Builtin registry) and std/regex.go
// (go-mix's own choice of the standard library's regexp package for
// pattern matching, reused here for matches()).
//
// Per spec.md §9 ("keep built-ins in a separate registry consulted only
// after the context misses; do not mutate the caller's context"), this
// registry is never written into the evaluation context — it corrects
// the Python original's pycel/main.py anti-pattern of leaking built-in
// names into the caller's own context dict.
package builtin

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/akashmaji946/go-cel/diagnostics"
	"github.com/akashmaji946/go-cel/value"
)

// Func is the signature every built-in implements: it receives its
// already-evaluated arguments and returns a Value or a diagnostic.
type Func func(args []value.Value) (value.Value, error)

// Registry holds the fixed set of built-in functions by name.
type Registry struct {
	fns map[string]Func
}

// NewRegistry returns a Registry pre-populated with all ten CEL
// built-ins: size, contains, startsWith, endsWith, matches, int, float,
// bool, string, type.
func NewRegistry() *Registry {
	r := &Registry{fns: make(map[string]Func, 10)}
	r.fns["size"] = size
	r.fns["contains"] = contains
	r.fns["startsWith"] = startsWith
	r.fns["endsWith"] = endsWith
	r.fns["matches"] = matches
	r.fns["int"] = toInt
	r.fns["float"] = toFloat
	r.fns["bool"] = toBool
	r.fns["string"] = toString
	r.fns["type"] = typeOf
	return r
}

// Lookup returns the named built-in, if one exists.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// Has reports whether name is a registered built-in, without retrieving
// it — used by the evaluator to decide whether a bare identifier names a
// built-in before any call is attempted.
func (r *Registry) Has(name string) bool {
	_, ok := r.fns[name]
	return ok
}

func arityError(name string, want int, got int) error {
	return diagnostics.NewType("%s expects %d argument(s), got %d", name, want, got)
}

func size(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("size", 1, len(args))
	}
	switch args[0].Kind() {
	case value.KindString:
		s, _ := args[0].AsString()
		return value.Int(int64(utf8.RuneCountInString(s))), nil
	case value.KindList:
		l, _ := args[0].AsList()
		return value.Int(int64(len(l))), nil
	case value.KindMap:
		m, _ := args[0].AsMap()
		return value.Int(int64(len(m))), nil
	default:
		return value.Null(), diagnostics.NewType("size() requires string, list, or map, got %s", args[0].TypeName())
	}
}

func contains(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Null(), arityError("contains", 2, len(args))
	}
	haystack, needle := args[0], args[1]
	switch haystack.Kind() {
	case value.KindString:
		s, _ := haystack.AsString()
		sub, ok := needle.AsString()
		if !ok {
			return value.Null(), diagnostics.NewType("contains(string, ...) requires a string needle, got %s", needle.TypeName())
		}
		return value.Bool(strings.Contains(s, sub)), nil
	case value.KindList:
		l, _ := haystack.AsList()
		for _, elem := range l {
			if elem.Equal(needle) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	default:
		return value.Null(), diagnostics.NewType("contains() requires string or list, got %s", haystack.TypeName())
	}
}

func startsWith(args []value.Value) (value.Value, error) {
	return stringPrefixSuffix("startsWith", args, strings.HasPrefix)
}

func endsWith(args []value.Value) (value.Value, error) {
	return stringPrefixSuffix("endsWith", args, strings.HasSuffix)
}

func stringPrefixSuffix(name string, args []value.Value, check func(s, sub string) bool) (value.Value, error) {
	if len(args) != 2 {
		return value.Null(), arityError(name, 2, len(args))
	}
	s, ok := args[0].AsString()
	if !ok {
		return value.Null(), diagnostics.NewType("%s() requires string arguments, got %s", name, args[0].TypeName())
	}
	sub, ok := args[1].AsString()
	if !ok {
		return value.Null(), diagnostics.NewType("%s() requires string arguments, got %s", name, args[1].TypeName())
	}
	return value.Bool(check(s, sub)), nil
}

// matches performs a full, anchored match of args[0] against the regular
// expression args[1]. CEL's "matches" is a full match, not a search, so
// the pattern is wrapped in ^(?:...)$ before compiling. Go's regexp
// package implements RE2, not PCRE: backreferences and lookaround are not
// supported, per spec.md §4.6's instruction to document the flavor used.
func matches(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return value.Null(), arityError("matches", 2, len(args))
	}
	s, ok := args[0].AsString()
	if !ok {
		return value.Null(), diagnostics.NewType("matches() requires string arguments, got %s", args[0].TypeName())
	}
	pattern, ok := args[1].AsString()
	if !ok {
		return value.Null(), diagnostics.NewType("matches() requires string arguments, got %s", args[1].TypeName())
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return value.Null(), diagnostics.NewOther("invalid regular expression %q: %v", pattern, err)
	}
	return value.Bool(re.MatchString(s)), nil
}

func toInt(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("int", 1, len(args))
	}
	switch args[0].Kind() {
	case value.KindBool:
		b, _ := args[0].AsBool()
		if b {
			return value.Int(1), nil
		}
		return value.Int(0), nil
	case value.KindInt:
		return args[0], nil
	case value.KindDouble:
		f, _ := args[0].AsDouble()
		return value.Int(int64(f)), nil
	case value.KindString:
		s, _ := args[0].AsString()
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return value.Null(), diagnostics.NewOther("cannot convert %q to int", s)
		}
		return value.Int(n), nil
	default:
		return value.Null(), diagnostics.NewType("int() requires bool, int, double, or string, got %s", args[0].TypeName())
	}
}

func toFloat(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("float", 1, len(args))
	}
	switch args[0].Kind() {
	case value.KindBool:
		b, _ := args[0].AsBool()
		if b {
			return value.Double(1), nil
		}
		return value.Double(0), nil
	case value.KindInt:
		i, _ := args[0].AsInt()
		return value.Double(float64(i)), nil
	case value.KindDouble:
		return args[0], nil
	case value.KindString:
		s, _ := args[0].AsString()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return value.Null(), diagnostics.NewOther("cannot convert %q to double", s)
		}
		return value.Double(f), nil
	default:
		return value.Null(), diagnostics.NewType("float() requires bool, int, double, or string, got %s", args[0].TypeName())
	}
}

func toBool(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("bool", 1, len(args))
	}
	switch args[0].Kind() {
	case value.KindBool:
		return args[0], nil
	case value.KindString:
		s, _ := args[0].AsString()
		switch s {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		default:
			return value.Null(), diagnostics.NewOther("cannot convert %q to bool", s)
		}
	default:
		return value.Null(), diagnostics.NewType("bool() requires bool or string, got %s", args[0].TypeName())
	}
}

func toString(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("string", 1, len(args))
	}
	return value.String(value.CanonicalString(args[0])), nil
}

func typeOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), arityError("type", 1, len(args))
	}
	return value.String(args[0].TypeName()), nil
}
