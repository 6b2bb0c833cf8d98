package exercise

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhisek/numa/internal/expr"
)

// ErrInvalidFile wraps a syntax or schema problem in an exercise file.
type ErrInvalidFile struct {
	Path string
	Err  error
}

func (e *ErrInvalidFile) Error() string {
	return fmt.Sprintf("invalid exercise file %s: %v", e.Path, e.Err)
}

func (e *ErrInvalidFile) Unwrap() error {
	return e.Err
}

// Set is a loaded exercise file.
type Set struct {
	Path  string
	Title string
	Items []Exercise

	// Modes are the modifiers requested by the file itself, as written.
	Modes []string
}

// Issue records an item that can never be answered.
type Issue struct {
	Index int
	Item  Exercise
	Err   error
}

func (i Issue) String() string {
	return fmt.Sprintf("item %d (%s %q): %v", i.Index+1, i.Item.Kind(), i.Item.PromptText(), i.Err)
}

type rawSet struct {
	Title string            `json:"title"`
	Items []json.RawMessage `json:"items"`
	Modes []string          `json:"modes"`
}

type rawQuestion struct {
	Question   string            `json:"question"`
	Answer     json.RawMessage   `json:"answer"`
	Accept     []json.RawMessage `json:"accept"`
	Validation *ValidationSpec   `json:"validation"`
}

// Load reads and parses an exercise file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exercise file: %w", err)
	}
	return Parse(data, path)
}

// Parse validates data against SetSchema and decodes it.
func Parse(data []byte, path string) (*Set, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrInvalidFile{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("exercise schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ErrInvalidFile{Path: path, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var raw rawSet
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(data, &raw.Items)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &ErrInvalidFile{Path: path, Err: err}
	}

	set := &Set{Path: path, Title: raw.Title, Modes: raw.Modes}
	if set.Title == "" && path != "" {
		set.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i, msg := range raw.Items {
		item, err := decodeItem(msg)
		if err != nil {
			return nil, &ErrInvalidFile{Path: path, Err: fmt.Errorf("item %d: %w", i+1, err)}
		}
		set.Items = append(set.Items, item)
	}
	if len(set.Items) == 0 {
		return nil, &ErrInvalidFile{Path: path, Err: ErrEmptySet}
	}
	return set, nil
}

// Check lists every unanswerable item in the set.
func (s *Set) Check() []Issue {
	var issues []Issue
	for i, item := range s.Items {
		if err := Validate(item); err != nil {
			issues = append(issues, Issue{Index: i, Item: item, Err: err})
		}
	}
	return issues
}

func decodeItem(msg json.RawMessage) (Exercise, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) > 0 && msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, err
		}
		return ExpressionItem{Expr: strings.TrimSpace(s)}, nil
	}

	var rq rawQuestion
	if err := json.Unmarshal(msg, &rq); err != nil {
		return nil, err
	}
	q := &QuestionItem{
		Question:   rq.Question,
		Answer:     scalarString(rq.Answer),
		Validation: rq.Validation,
	}
	// Non-string entries in accept are dropped.
	for _, a := range rq.Accept {
		var s string
		if err := json.Unmarshal(a, &s); err == nil {
			q.Accept = append(q.Accept, s)
		}
	}
	return q, nil
}

// scalarString renders a JSON string as written and a JSON number in its
// shortest form, so 3.10 becomes "3.1". Null and absent values become "".
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return expr.FormatNumber(v)
	}
	return string(raw)
}

// IsInvalidFile reports whether err came from a malformed exercise file.
func IsInvalidFile(err error) bool {
	var target *ErrInvalidFile
	return errors.As(err, &target)
}
