// Package varlib holds the library of built-in template variables.
package varlib

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/githubnext/flowlint/pkg/logger"
)

var libraryLog = logger.New("varlib:library")

//go:embed library.yaml
var builtinLibrary []byte

// Variable is one node of the variable tree.
type Variable struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Open        bool        `yaml:"open,omitempty" json:"open,omitempty"`
	Children    []*Variable `yaml:"children,omitempty" json:"children,omitempty"`
}

func (v *Variable) child(name string) *Variable {
	for _, c := range v.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Library resolves dotted variable paths against a tree of variables.
// A Library is immutable after construction and safe for concurrent use.
type Library struct {
	roots map[string]*Variable
	order []string
}

type libraryFile struct {
	Variables []*Variable `yaml:"variables"`
}

// Parse reads a library from YAML of the form {variables: [...]}.
func Parse(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse variable library: %w", err)
	}
	return New(file.Variables...)
}

// New builds a library from root variables. Names must be non-empty and
// unique among siblings.
func New(vars ...*Variable) (*Library, error) {
	lib := &Library{roots: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		if err := checkVariable(v, ""); err != nil {
			return nil, err
		}
		if _, dup := lib.roots[v.Name]; dup {
			return nil, fmt.Errorf("duplicate variable %q", v.Name)
		}
		lib.roots[v.Name] = v
		lib.order = append(lib.order, v.Name)
	}
	return lib, nil
}

func checkVariable(v *Variable, parent string) error {
	if v == nil || strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("variable under %q has no name", parent)
	}
	path := v.Name
	if parent != "" {
		path = parent + "." + v.Name
	}
	seen := map[string]bool{}
	for _, c := range v.Children {
		if err := checkVariable(c, path); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate variable %q", path+"."+c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

var defaultLibrary = sync.OnceValue(func() *Library {
	lib, err := Parse(builtinLibrary)
	if err != nil {
		panic(fmt.Sprintf("embedded variable library is invalid: %v", err))
	}
	libraryLog.Printf("Loaded %d built-in variables", len(lib.order))
	return lib
})

// Default returns the built-in library.
func Default() *Library {
	return defaultLibrary()
}

// With returns a new library holding l's variables plus extra. An extra root
// with the same name as an existing one replaces it.
func (l *Library) With(extra ...*Variable) (*Library, error) {
	vars := make([]*Variable, 0, len(l.order)+len(extra))
	replaced := map[string]bool{}
	for _, v := range extra {
		if v != nil {
			replaced[v.Name] = true
		}
	}
	for _, name := range l.order {
		if !replaced[name] {
			vars = append(vars, l.roots[name])
		}
	}
	vars = append(vars, extra...)
	return New(vars...)
}

// Resolve reports whether path names a variable in the library. Every
// prefix of a known path resolves, and so does anything below an open
// variable.
func (l *Library) Resolve(path string) bool {
	if l == nil || path == "" {
		return false
	}
	segments := strings.Split(path, ".")
	current, ok := l.roots[segments[0]]
	if !ok {
		return false
	}
	for _, seg := range segments[1:] {
		if current.Open {
			return true
		}
		current = current.child(seg)
		if current == nil {
			libraryLog.Printf("Path %s not in library", path)
			return false
		}
	}
	return true
}

// Names returns the root variable names in declaration order.
func (l *Library) Names() []string {
	return slices.Clone(l.order)
}

// Lookup returns the root variable called name.
func (l *Library) Lookup(name string) (*Variable, bool) {
	v, ok := l.roots[name]
	return v, ok
}
