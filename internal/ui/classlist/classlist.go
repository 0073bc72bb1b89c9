// Package classlist joins CSS class values given as a string, a list of
// strings or a map of class name to inclusion flag.
package classlist

import (
	"strings"

	"github.com/a-h/templ"
)

type kind int

const (
	kindNone kind = iota
	kindString
	kindList
	kindFlags
)

// Value is one class-list input. The zero value contributes no classes.
type Value struct {
	kind  kind
	str   string
	list  []string
	flags map[string]bool
}

// String wraps a space-separated class string.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// List wraps a list of class names.
func List(names ...string) Value {
	return Value{kind: kindList, list: names}
}

// Flags wraps a map of class name to inclusion flag. Only names mapped to
// true are emitted, in lexical order.
func Flags(flags map[string]bool) Value {
	return Value{kind: kindFlags, flags: flags}
}

// class converts v into an input accepted by templ.Classes.
func (v Value) class() any {
	switch v.kind {
	case kindString:
		return strings.Fields(v.str)
	case kindList:
		out := make([]string, 0, len(v.list))
		for _, name := range v.list {
			out = append(out, strings.Fields(name)...)
		}
		return out
	case kindFlags:
		// A false flag only drops its own entry; it must not disable the
		// same class contributed by another value.
		enabled := make(map[string]bool, len(v.flags))
		for name, include := range v.flags {
			if !include {
				continue
			}
			for _, token := range strings.Fields(name) {
				enabled[token] = true
			}
		}
		return enabled
	default:
		return nil
	}
}

// Join returns base followed by the classes of every value, space separated.
// Empty names are dropped and repeated names are emitted once, at their
// first position.
func Join(base string, values ...Value) string {
	classes := make(templ.CSSClasses, 0, len(values)+1)
	classes = append(classes, strings.Fields(base))
	for _, v := range values {
		if c := v.class(); c != nil {
			classes = append(classes, c)
		}
	}
	return classes.String()
}
