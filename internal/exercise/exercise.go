// Package exercise defines the drill items: arithmetic expressions and
// free-form question records.
package exercise

import (
	"errors"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/numa/internal/expr"
)

var (
	// ErrEmptySet is returned when an exercise file holds no items.
	ErrEmptySet = errors.New("exercise set is empty")

	// ErrUnanswerable marks an item no typed input can ever match.
	ErrUnanswerable = errors.New("exercise has no usable answer")
)

// Kind tags the exercise variant.
type Kind int

const (
	KindExpression Kind = iota
	KindQuestion
)

func (k Kind) String() string {
	switch k {
	case KindExpression:
		return "expression"
	case KindQuestion:
		return "question"
	}
	return "unknown"
}

// Validation types.
const (
	TypeExact   = "exact"
	TypeNumeric = "numeric"
)

// ValidationSpec governs how an answer is compared and how much must be
// typed before a check fires. Nil fields are unset.
type ValidationSpec struct {
	Type      string   `json:"type"`
	Decimals  *int     `json:"decimals,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	Target    *float64 `json:"target,omitempty"`
}

// IsNumeric reports whether v selects numeric-tolerance comparison.
// A nil ValidationSpec is exact.
func (v *ValidationSpec) IsNumeric() bool {
	return v != nil && v.Type == TypeNumeric
}

// Exercise is anything that can be presented and checked.
type Exercise interface {
	// Kind returns the variant tag.
	Kind() Kind

	// PromptText is the line shown before the input.
	PromptText() string

	// AcceptedAnswers lists every form that counts as correct.
	AcceptedAnswers() []string

	// PrimaryAnswer is the canonical answer, used as the numeric target
	// fallback and for minimum-length gating.
	PrimaryAnswer() string

	// ValidationSpec returns nil for exact matching.
	ValidationSpec() *ValidationSpec

	// Complexity scores the item for difficulty ordering.
	Complexity() float64

	// Mirror returns the item as shown under mirrored rendering.
	Mirror() Exercise

	// String returns the item as written in the exercise file.
	String() string
}

// ExpressionItem is an arithmetic expression such as "3×4-2".
type ExpressionItem struct {
	Expr string
}

var _ Exercise = ExpressionItem{}

func (e ExpressionItem) Kind() Kind { return KindExpression }

func (e ExpressionItem) PromptText() string { return expr.Prompt(e.Expr) }

// Value is the computed answer, NaN when the expression is not computable.
func (e ExpressionItem) Value() float64 { return expr.Evaluate(e.Expr) }

// PrimaryAnswer is "" when the expression is not computable, so no typed
// input can ever match it.
func (e ExpressionItem) PrimaryAnswer() string {
	v := e.Value()
	if math.IsNaN(v) {
		return ""
	}
	return expr.FormatNumber(v)
}

func (e ExpressionItem) AcceptedAnswers() []string {
	if a := e.PrimaryAnswer(); a != "" {
		return []string{a}
	}
	return nil
}

func (e ExpressionItem) ValidationSpec() *ValidationSpec { return nil }

func (e ExpressionItem) Complexity() float64 { return expr.Complexity(e.Expr) }

// Mirror reverses the expression. The accepted answer is derived from the
// mirrored form, so it differs for - and ÷.
func (e ExpressionItem) Mirror() Exercise { return ExpressionItem{Expr: expr.Mirror(e.Expr)} }

func (e ExpressionItem) String() string { return e.Expr }

// QuestionItem is a free-form question with one or more accepted answers.
type QuestionItem struct {
	Question   string
	Answer     string
	Accept     []string
	Validation *ValidationSpec
}

var _ Exercise = (*QuestionItem)(nil)

func (q *QuestionItem) Kind() Kind { return KindQuestion }

// PromptText ends with whitespace so the typed answer never touches the question.
func (q *QuestionItem) PromptText() string {
	if r, _ := utf8.DecodeLastRuneInString(q.Question); unicode.IsSpace(r) {
		return q.Question
	}
	return q.Question + " "
}

func (q *QuestionItem) PrimaryAnswer() string {
	if len(q.Accept) > 0 {
		return q.Accept[0]
	}
	return q.Answer
}

func (q *QuestionItem) AcceptedAnswers() []string {
	if len(q.Accept) > 0 {
		return q.Accept
	}
	return []string{q.Answer}
}

func (q *QuestionItem) ValidationSpec() *ValidationSpec { return q.Validation }

// Complexity is unbounded: questions are never reordered by difficulty.
func (q *QuestionItem) Complexity() float64 { return math.Inf(1) }

func (q *QuestionItem) Mirror() Exercise { return q }

func (q *QuestionItem) String() string { return q.Question }

// RevealText joins the accepted answers for display, or "—" when there are none.
func RevealText(ex Exercise) string {
	var parts []string
	for _, a := range ex.AcceptedAnswers() {
		if a != "" {
			parts = append(parts, a)
		}
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " / ")
}

// Validate reports ErrUnanswerable for items that can never be answered:
// an expression without a computable value, a numeric question without a
// finite target, or a question whose accepted answers are all empty.
func Validate(ex Exercise) error {
	switch ex.Kind() {
	case KindExpression:
		if ex.PrimaryAnswer() == "" {
			return ErrUnanswerable
		}
		return nil
	case KindQuestion:
		if v := ex.ValidationSpec(); v.IsNumeric() {
			if v.Target != nil && !math.IsNaN(*v.Target) && !math.IsInf(*v.Target, 0) {
				return nil
			}
			if _, ok := expr.ParseNumber(ex.PrimaryAnswer()); !ok {
				return ErrUnanswerable
			}
			return nil
		}
		for _, a := range ex.AcceptedAnswers() {
			if strings.TrimSpace(a) != "" {
				return nil
			}
		}
		return ErrUnanswerable
	}
	return ErrUnanswerable
}
