package forms

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDefinitions []byte

// Registry holds form definitions by identifier.
type Registry struct {
	forms map[string]*Form
	order []string
}

type document struct {
	Forms []Form `yaml:"forms"`
}

// Parse reads a YAML document of form definitions. Unknown keys are rejected
// so typos in field attributes surface at startup.
func Parse(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	reg := &Registry{forms: make(map[string]*Form, len(doc.Forms))}
	for i := range doc.Forms {
		f := doc.Forms[i]
		if err := f.normalize(); err != nil {
			return nil, err
		}
		if _, dup := reg.forms[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate form id %q", ErrInvalidDefinition, f.ID)
		}
		reg.forms[f.ID] = &f
		reg.order = append(reg.order, f.ID)
	}
	return reg, nil
}

// LoadFile parses the definitions in path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open form definitions: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the definitions embedded in the binary.
func Default() (*Registry, error) {
	return Parse(bytes.NewReader(defaultDefinitions))
}

// Load reads path, or the embedded defaults when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Lookup returns the form with the given identifier.
func (r *Registry) Lookup(id string) (*Form, error) {
	if r != nil {
		if f, ok := r.forms[id]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrFormNotFound, id)
}

// MustLookup is like Lookup but panics when the form is missing.
func (r *Registry) MustLookup(id string) *Form {
	f, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return f
}

// Forms returns the definitions in document order.
func (r *Registry) Forms() []*Form {
	out := make([]*Form, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.forms[id])
	}
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.forms)
}
