package treeval

import (
	"fmt"
	"strconv"
)

// PathRef builds dotted/bracket paths in a chain-safe way and creates Issues.
// Mapping traversal joins with ".", sequence traversal appends "[index]", or
// "[index,rule=name]" when more than one rule name is active at that level.
type PathRef interface {
	Field(name string) PathRef
	Index(i int, rule string, multi bool) PathRef
	String() string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the empty root path.
func Root() PathRef { return pathRef("") }

type pathRef string

func (p pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	if p == "" {
		return pathRef(name)
	}
	return p + "." + pathRef(name)
}

func (p pathRef) Index(i int, rule string, multi bool) PathRef {
	if multi {
		return p + pathRef("["+strconv.Itoa(i)+",rule="+rule+"]")
	}
	return p + pathRef("["+strconv.Itoa(i)+"]")
}

func (p pathRef) String() string { return string(p) }

func (p pathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: string(p), Code: code, Message: msg, Params: m}
}
