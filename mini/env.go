package mini

import (
	"maps"
	"slices"
)

// Namespace selects one of the three independent variable mappings.
type Namespace int

const (
	NamespaceInt Namespace = iota
	NamespaceString
	NamespaceBool
)

func (n Namespace) String() string {
	switch n {
	case NamespaceInt:
		return "int"
	case NamespaceString:
		return "string"
	case NamespaceBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Env is the flat variable environment of one program run. A name may be
// bound in more than one namespace at the same time; declaring `string x`
// leaves an earlier `int x` in place.
type Env struct {
	ints    map[string]int32
	strings map[string]string
	bools   map[string]bool
}

func NewEnv() *Env {
	return &Env{
		ints:    make(map[string]int32),
		strings: make(map[string]string),
		bools:   make(map[string]bool),
	}
}

// Declare inserts or replaces name in the chosen namespace.
func (e *Env) Declare(ns Namespace, name string, val Value) {
	switch ns {
	case NamespaceInt:
		e.ints[name] = val.Int()
	case NamespaceString:
		e.strings[name] = val.String()
	case NamespaceBool:
		e.bools[name] = val.Bool()
	}
}

// Has reports whether name is bound in ns.
func (e *Env) Has(ns Namespace, name string) bool {
	var ok bool
	switch ns {
	case NamespaceInt:
		_, ok = e.ints[name]
	case NamespaceString:
		_, ok = e.strings[name]
	case NamespaceBool:
		_, ok = e.bools[name]
	}
	return ok
}

func (e *Env) LookupInt(name string) (int32, bool) {
	v, ok := e.ints[name]
	return v, ok
}

func (e *Env) LookupString(name string) (string, bool) {
	v, ok := e.strings[name]
	return v, ok
}

func (e *Env) LookupBool(name string) (bool, bool) {
	v, ok := e.bools[name]
	return v, ok
}

// Resolve looks name up in the string, integer and boolean namespaces, in
// that order, and returns the first binding found.
func (e *Env) Resolve(name string) (Value, error) {
	if s, ok := e.strings[name]; ok {
		return NewString(s), nil
	}
	if n, ok := e.ints[name]; ok {
		return NewInt(n), nil
	}
	if b, ok := e.bools[name]; ok {
		return NewBool(b), nil
	}
	return Value{}, newError(KindUnknownIdentifier, "%s is not defined", name)
}

// Names returns every bound name once, sorted.
func (e *Env) Names() []string {
	seen := make(map[string]struct{}, len(e.ints)+len(e.strings)+len(e.bools))
	for name := range e.ints {
		seen[name] = struct{}{}
	}
	for name := range e.strings {
		seen[name] = struct{}{}
	}
	for name := range e.bools {
		seen[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

func (e *Env) Len() int {
	return len(e.ints) + len(e.strings) + len(e.bools)
}

// Snapshot copies the three namespaces.
func (e *Env) Snapshot() Snapshot {
	return Snapshot{
		Ints:    maps.Clone(e.ints),
		Strings: maps.Clone(e.strings),
		Bools:   maps.Clone(e.bools),
	}
}

// Snapshot is a detached copy of an Env's bindings.
type Snapshot struct {
	Ints    map[string]int32  `yaml:"ints"`
	Strings map[string]string `yaml:"strings"`
	Bools   map[string]bool   `yaml:"bools"`
}
