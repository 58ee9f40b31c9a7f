// Package export encodes render plans as JSON or YAML and validates them
// against the embedded plan schema.
package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/sknext/internal/view"
)

//go:embed plan.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/sknext/plan.schema.json"

// Document is the exported form of a render plan.
type Document struct {
	File      string `json:"file" yaml:"file"`
	Mode      string `json:"mode" yaml:"mode"`
	Count     int    `json:"count" yaml:"count"`
	Shown     int    `json:"shown" yaml:"shown"`
	Remaining int    `json:"remaining" yaml:"remaining"`
	Complete  bool   `json:"complete" yaml:"complete"`
	Lines     []Line `json:"lines" yaml:"lines"`
}

// Line is the exported form of a plan line. Text always holds the unstyled
// rendering of the line.
type Line struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Text     string  `json:"text" yaml:"text"`
	Number   *int    `json:"number,omitempty" yaml:"number,omitempty"`
	Title    *string `json:"title,omitempty" yaml:"title,omitempty"`
	Level    int     `json:"level,omitempty" yaml:"level,omitempty"`
	Indent   int     `json:"indent,omitempty" yaml:"indent,omitempty"`
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Priority bool    `json:"priority,omitempty" yaml:"priority,omitempty"`
	StoryTag string  `json:"story_tag,omitempty" yaml:"story_tag,omitempty"`
}

// ValidationError reports where an exported document violates the schema.
type ValidationError struct {
	Path    string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("plan validation failed at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("plan validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// FromPlan converts a plan built for the task file at path.
func FromPlan(p view.Plan, path string) Document {
	doc := Document{
		File:      path,
		Mode:      p.Mode.String(),
		Count:     p.Count,
		Shown:     p.Shown,
		Remaining: p.Remaining,
		Complete:  p.Complete,
		Lines:     make([]Line, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		out := Line{
			Kind: l.Kind.String(),
			Text: l.String(),
		}
		switch l.Kind {
		case view.KindPhase:
			n, title := l.Number, l.Title
			out.Number = &n
			out.Title = &title
		case view.KindSection:
			title := l.Title
			out.Level = l.Level
			out.Title = &title
			out.Indent = l.Indent
		case view.KindTask:
			out.ID = l.TaskID
			out.Priority = l.Priority
			out.StoryTag = l.StoryTag
		}
		doc.Lines = append(doc.Lines, out)
	}
	return doc
}

// Encode returns the indented JSON form of the plan.
func Encode(p view.Plan, path string) ([]byte, error) {
	data, err := json.MarshalIndent(FromPlan(p, path), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	return append(data, '\n'), nil
}

// Write encodes the plan, validates it, and writes it to w.
func Write(w io.Writer, p view.Plan, path string) error {
	data, err := Encode(p, path)
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// EncodeYAML returns the YAML form of the plan.
func EncodeYAML(p view.Plan, path string) ([]byte, error) {
	data, err := yaml.Marshal(FromPlan(p, path))
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}
	return data, nil
}

// WriteYAML validates the plan against the schema and writes its YAML form
// to w.
func WriteYAML(w io.Writer, p view.Plan, path string) error {
	data, err := Encode(p, path)
	if err != nil {
		return err
	}
	if err := Validate(data); err != nil {
		return err
	}
	out, err := EncodeYAML(p, path)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load plan schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile plan schema: %w", err)
	}
	return schema, nil
})

// Validate checks JSON data against the plan schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return &ValidationError{Message: "invalid JSON: " + err.Error(), err: err}
	}

	if err := schema.Validate(v); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error(), err: err}
	}
	leaf := firstLeaf(ve)
	return &ValidationError{
		Path:    pointerToPath(leaf.InstanceLocation),
		Message: leaf.Message,
		err:     err,
	}
}

// firstLeaf follows the first cause down to the most specific failure.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath turns a JSON pointer such as "/lines/3/id" into "lines[3].id".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
