package answer

import (
	"testing"

	"github.com/abhisek/numa/internal/exercise"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestEvaluate_Numeric(t *testing.T) {
	spec := &exercise.ValidationSpec{Type: exercise.TypeNumeric, Decimals: intp(2), Target: floatp(3.14)}

	tests := []struct {
		input string
		want  bool
	}{
		{"3.14159", true},
		{"3.1", false},
		{"3,14", true},
		{"3.144", true},
		{"3.146", false},
		{"", false},
		{"pi", false},
		{"Inf", false},
	}
	for _, tc := range tests {
		if got := Evaluate(tc.input, spec, nil); got != tc.want {
			t.Errorf("Evaluate(%q, numeric 3.14/2) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluate_NumericDefaultDecimals(t *testing.T) {
	spec := &exercise.ValidationSpec{Type: exercise.TypeNumeric}
	// Target comes from the primary accepted answer, rounded to 1 decimal.
	if !Evaluate("2.54", spec, []string{"2.5"}) {
		t.Error("expected 2.54 to round to 2.5")
	}
	if Evaluate("2.56", spec, []string{"2.5"}) {
		t.Error("expected 2.56 to round to 2.6")
	}
	if Evaluate("2.5", spec, []string{"n/a"}) {
		t.Error("expected no match without a numeric target")
	}
}

func TestEvaluate_Exact(t *testing.T) {
	accepted := []string{"7", "VII"}
	tests := []struct {
		input string
		want  bool
	}{
		{" vii ", true},
		{"7", true},
		{"v i i", true},
		{"VIII", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := Evaluate(tc.input, nil, accepted); got != tc.want {
			t.Errorf("Evaluate(%q, exact) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestEvaluate_ExactTypeIsNotNumeric(t *testing.T) {
	spec := &exercise.ValidationSpec{Type: exercise.TypeExact, Decimals: intp(2)}
	if Evaluate("3.140", spec, []string{"3.14"}) {
		t.Error("exact mode must not apply numeric tolerance")
	}
}

func TestEvaluate_EmptyAnswerNeverMatches(t *testing.T) {
	for _, in := range []string{"", "a", "0"} {
		if in != "" && Evaluate(in, nil, []string{""}) {
			t.Errorf("Evaluate(%q) matched an empty answer", in)
		}
	}
}

func TestChecker_ReadyExact(t *testing.T) {
	c := NewChecker(&exercise.QuestionItem{Question: "7?", Accept: []string{"7", "VII"}})

	tests := []struct {
		input string
		want  bool
	}{
		{"7", true},
		{"VI", false},
		{"VII", true},
		{" 7 ", true},
		{"VIII", false},
	}
	for _, tc := range tests {
		if got := c.Ready(tc.input); got != tc.want {
			t.Errorf("Ready(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestChecker_ReadyNumeric(t *testing.T) {
	c := NewChecker(&exercise.QuestionItem{
		Question:   "pi?",
		Answer:     "3.14",
		Validation: &exercise.ValidationSpec{Type: exercise.TypeNumeric, Decimals: intp(2)},
	})
	if c.Ready("3.1") {
		t.Error("expected 3 characters to be below the default minimum of 4")
	}
	if !c.Ready("3.14") || !c.Ready("3.141") {
		t.Error("expected inputs at or past the minimum length to be ready")
	}

	c = NewChecker(&exercise.QuestionItem{
		Question:   "pi?",
		Answer:     "3.14",
		Validation: &exercise.ValidationSpec{Type: exercise.TypeNumeric, MinLength: intp(1)},
	})
	if !c.Ready("3") {
		t.Error("expected explicit minLength to apply")
	}
}

func TestChecker_MaxLength(t *testing.T) {
	tests := []struct {
		name string
		item exercise.Exercise
		want int
	}{
		{"expression", exercise.ExpressionItem{Expr: "12×12"}, 3},
		{"longest accepted", &exercise.QuestionItem{Accept: []string{"7", "VII"}}, 3},
		{"empty answer", &exercise.QuestionItem{Question: "?"}, 1},
		{"exact override", &exercise.QuestionItem{Answer: "a", Validation: &exercise.ValidationSpec{MaxLength: intp(5)}}, 5},
		{"numeric default", &exercise.QuestionItem{Answer: "3.5", Validation: &exercise.ValidationSpec{Type: exercise.TypeNumeric}}, 6},
		{"numeric long answer", &exercise.QuestionItem{Answer: "3.1415926", Validation: &exercise.ValidationSpec{Type: exercise.TypeNumeric}}, 9},
		{"numeric override", &exercise.QuestionItem{Answer: "3.5", Validation: &exercise.ValidationSpec{Type: exercise.TypeNumeric, MaxLength: intp(2)}}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewChecker(tc.item).MaxLength(); got != tc.want {
				t.Errorf("MaxLength = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestChecker_Clamp(t *testing.T) {
	c := NewChecker(exercise.ExpressionItem{Expr: "3×3"})
	if v, trunc := c.Clamp(" 9 "); v != "9" || trunc {
		t.Errorf("Clamp(' 9 ') = (%q, %v)", v, trunc)
	}
	if v, trunc := c.Clamp("98"); v != "9" || !trunc {
		t.Errorf("Clamp('98') = (%q, %v), want truncation to 9", v, trunc)
	}
}

func TestChecker_ExpressionAnswer(t *testing.T) {
	c := NewChecker(exercise.ExpressionItem{Expr: "7÷2"})
	if !c.Evaluate("3.5") {
		t.Error("expected 3.5 to match 7÷2")
	}
	if c.Evaluate("3,5") {
		t.Error("exact expression answers do not accept a comma")
	}

	broken := NewChecker(exercise.ExpressionItem{Expr: "1÷0"})
	for _, in := range []string{"0", "NaN", "nan", "Infinity", ""} {
		if broken.Evaluate(in) {
			t.Errorf("Evaluate(%q) matched an uncomputable expression", in)
		}
	}
	if broken.Ready("nan") {
		t.Error("a three-letter input should not arm a check for an uncomputable expression")
	}
}
