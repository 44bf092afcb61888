package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	gjsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/githubnext/flowlint/pkg/logger"
)

var schemaLog = logger.New("document:schema")

const schemaURL = "flowlint-document.json"

// SchemaError lists every place a document disagrees with the schema.
type SchemaError struct {
	Source string
	Causes []SchemaCause
}

// SchemaCause is one schema violation. Path is a JSON pointer into the
// document, "" for the root.
type SchemaCause struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s does not match the flow document schema", e.Source)
	for _, c := range e.Causes {
		path := c.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(&b, "\n  - at %s: %s", path, c.Message)
	}
	return b.String()
}

// Schema returns the JSON schema of a flow document, derived from Document.
// Objects accept properties the schema does not name.
func Schema() (*gjsonschema.Schema, error) {
	s, err := gjsonschema.For[Document](nil)
	if err != nil {
		return nil, fmt.Errorf("deriving document schema: %w", err)
	}
	allowUnknownProperties(s)
	s.Title = "flowlint flow document"
	return s, nil
}

// allowUnknownProperties drops every "additionalProperties: false" so UI
// metadata stored next to known fields does not fail validation. Typed
// additionalProperties, as for maps, are kept.
func allowUnknownProperties(s *gjsonschema.Schema) {
	if s == nil {
		return
	}
	if ap := s.AdditionalProperties; ap != nil && ap.Not != nil {
		s.AdditionalProperties = nil
	}
	for _, p := range s.Properties {
		allowUnknownProperties(p)
	}
	for _, d := range s.Defs {
		allowUnknownProperties(d)
	}
	allowUnknownProperties(s.Items)
	allowUnknownProperties(s.AdditionalProperties)
	for _, group := range [][]*gjsonschema.Schema{s.AnyOf, s.OneOf, s.AllOf, s.PrefixItems} {
		for _, sub := range group {
			allowUnknownProperties(sub)
		}
	}
}

// SchemaJSON returns the document schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := SchemaJSON()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding document schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding document schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling document schema: %w", err)
	}
	schemaLog.Print("Compiled document schema")
	return sch, nil
})

var messagePrinter = message.NewPrinter(language.English)

// validateSchema checks JSON data against the document schema. Violations
// are returned as a *SchemaError.
func validateSchema(source string, data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s is not valid JSON: %w", source, err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validating %s: %w", source, err)
	}

	schemaErr := &SchemaError{Source: source}
	for _, cause := range leafCauses(ve) {
		path := ""
		if len(cause.InstanceLocation) > 0 {
			path = "/" + strings.Join(cause.InstanceLocation, "/")
		}
		schemaErr.Causes = append(schemaErr.Causes, SchemaCause{
			Path:    path,
			Message: cause.ErrorKind.LocalizedString(messagePrinter),
		})
	}
	slices.SortStableFunc(schemaErr.Causes, func(a, b SchemaCause) int {
		return strings.Compare(a.Path, b.Path)
	})
	schemaLog.Printf("%s: %d schema violations", source, len(schemaErr.Causes))
	return schemaErr
}

// leafCauses collects the innermost errors, which carry the useful
// locations.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}
