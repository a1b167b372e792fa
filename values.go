package funcargparse

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType converts the raw command-line string of an argument into a typed
// value. The built-in types cover the datatype names commonly found in
// numpy-style parameter docs; custom types can be registered with
// [RegisterValueType].
type ValueType struct {
	// Name is the tag this type is registered under, e.g. "int" or "float".
	Name string

	// Parse converts a single raw token.
	Parse func(string) (any, error)
}

// Built-in value types. String is the identity conversion.
var (
	String = &ValueType{Name: "str", Parse: func(s string) (any, error) {
		return s, nil
	}}
	Int = &ValueType{Name: "int", Parse: func(s string) (any, error) {
		return strconv.Atoi(s)
	}}
	Float = &ValueType{Name: "float", Parse: func(s string) (any, error) {
		return strconv.ParseFloat(s, 64)
	}}
	Bool = &ValueType{Name: "bool", Parse: func(s string) (any, error) {
		return strconv.ParseBool(s)
	}}
	Complex = &ValueType{Name: "complex", Parse: func(s string) (any, error) {
		return strconv.ParseComplex(s, 128)
	}}
)

var valueTypes = map[string]*ValueType{
	"str":     String,
	"int":     Int,
	"float":   Float,
	"bool":    Bool,
	"complex": Complex,
}

// LookupValueType returns the value type registered under tag. The second
// return value reports whether the tag is known.
func LookupValueType(tag string) (*ValueType, bool) {
	vt, ok := valueTypes[tag]
	return vt, ok
}

// RegisterValueType makes a custom value type available to the signature
// interpreter under vt.Name. Registering a known tag replaces the previous
// entry.
func RegisterValueType(vt *ValueType) {
	if vt == nil || vt.Name == "" {
		panic("funcargparse: cannot register a value type without a name")
	}
	valueTypes[vt.Name] = vt
}

// resolveValueType maps a documented datatype tag to a registered value type.
// A trailing "s" is tolerated so that plural tags like "floats" resolve too.
// The returned metavar is the tag in its singular form, or "" when the tag is
// unknown.
func resolveValueType(tag string) (vt *ValueType, metavar string, ok bool) {
	if vt, ok := LookupValueType(tag); ok {
		return vt, tag, true
	}
	if singular, found := strings.CutSuffix(tag, "s"); found {
		if vt, ok := LookupValueType(singular); ok {
			return vt, singular, true
		}
	}
	return nil, "", false
}

// switchValue is the flag value behind the StoreTrue and StoreFalse actions.
// Naming the switch on the command line stores the target value; the initial
// value comes from the argument default.
type switchValue struct {
	target bool
	v      bool
}

func (s *switchValue) String() string {
	if s == nil {
		return "false"
	}
	return strconv.FormatBool(s.v)
}

func (s *switchValue) Set(raw string) error {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return errParse
	}
	if b {
		s.v = s.target
	} else {
		s.v = !s.target
	}
	return nil
}

func (s *switchValue) Get() any { return s.v }

// IsBoolFlag marks the switch as valueless for the flag package, so that
// "-verbose item" does not swallow "item" as the switch value.
func (s *switchValue) IsBoolFlag() bool { return true }

// scalarValue stores a single, optionally coerced value. A nil typ leaves the
// raw string untouched.
type scalarValue struct {
	typ *ValueType
	v   any
}

func (s *scalarValue) String() string {
	if s == nil || s.v == nil {
		return ""
	}
	return fmt.Sprint(s.v)
}

func (s *scalarValue) Set(raw string) error {
	if s.typ == nil {
		s.v = raw
		return nil
	}
	v, err := s.typ.Parse(raw)
	if err != nil {
		return errParse
	}
	s.v = v
	return nil
}

func (s *scalarValue) Get() any { return s.v }

// listValue accumulates one value per occurrence for arguments that accept one
// or more values. The first occurrence replaces the default instead of
// appending to it. Its Get returns []any, or nil when the argument never
// appeared and has no default.
type listValue struct {
	typ   *ValueType
	items []any
	set   bool
}

func (l *listValue) String() string {
	if l == nil || l.items == nil {
		return ""
	}
	parts := make([]string, len(l.items))
	for i, item := range l.items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, " ")
}

func (l *listValue) Set(raw string) error {
	v := any(raw)
	if l.typ != nil {
		parsed, err := l.typ.Parse(raw)
		if err != nil {
			return errParse
		}
		v = parsed
	}
	if !l.set {
		l.items = nil
		l.set = true
	}
	l.items = append(l.items, v)
	return nil
}

func (l *listValue) Get() any {
	if l.items == nil {
		return nil
	}
	return l.items
}

// listDefault converts an argument default into the initial item slice of a
// listValue. A nil default stays nil so the parsed value reads as absent.
func listDefault(def any) []any {
	switch d := def.(type) {
	case nil:
		return nil
	case []any:
		items := make([]any, len(d))
		copy(items, d)
		return items
	default:
		return []any{d}
	}
}
