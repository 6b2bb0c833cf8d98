// Package expr tokenizes and evaluates drill expressions over the fixed
// operator set + - × ÷.
package expr

import (
	"math"
	"strconv"
	"strings"
)

// Operators is the fixed operator set, in display form.
const Operators = "+-×÷"

// IsOperator reports whether r is one of the supported operators.
func IsOperator(r rune) bool {
	return strings.ContainsRune(Operators, r)
}

// Split breaks an expression into alternating operands and operators.
// The result always has len(operands) == len(ops)+1. Operands are returned
// as typed (untrimmed). A '-' at the start or straight after another
// operator is the sign of the following operand, so "5×-2" splits into
// "5" and "-2".
func Split(s string) (operands []string, ops []rune) {
	start := 0
	expectOperand := true
	for i, r := range s {
		switch {
		case r == ' ' || r == '\t':
			continue
		case r == '-' && expectOperand:
			expectOperand = false
			continue
		case !IsOperator(r):
			expectOperand = false
			continue
		}
		operands = append(operands, s[start:i])
		ops = append(ops, r)
		start = i + len(string(r))
		expectOperand = true
	}
	operands = append(operands, s[start:])
	return operands, ops
}

// Join interleaves operands and operators back into an expression.
func Join(operands []string, ops []rune) string {
	var b strings.Builder
	for i, v := range operands {
		if i > 0 && i-1 < len(ops) {
			b.WriteRune(ops[i-1])
		}
		b.WriteString(v)
	}
	return b.String()
}

// parseOperand parses a single operand. Empty or non-numeric operands yield NaN.
func parseOperand(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// apply applies a binary operator. ok is false on division by zero or an
// unknown operator.
func apply(a float64, op rune, b float64) (float64, bool) {
	switch op {
	case '+':
		return a + b, true
	case '-':
		return a - b, true
	case '×':
		return a * b, true
	case '÷':
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// Evaluate computes the value of an expression. Multiplication and division
// bind tighter than addition and subtraction; operators of equal precedence
// reduce left to right. Malformed input and division by zero yield NaN.
func Evaluate(s string) float64 {
	operands, ops := Split(s)
	values := make([]float64, 0, len(operands))
	for _, o := range operands {
		v := parseOperand(o)
		if math.IsNaN(v) {
			return math.NaN()
		}
		values = append(values, v)
	}

	// First pass folds × and ÷ into the running term.
	terms := []float64{values[0]}
	var additive []rune
	for i, op := range ops {
		next := values[i+1]
		if op == '×' || op == '÷' {
			last := len(terms) - 1
			v, ok := apply(terms[last], op, next)
			if !ok {
				return math.NaN()
			}
			terms[last] = v
			continue
		}
		terms = append(terms, next)
		additive = append(additive, op)
	}

	result := terms[0]
	for i, op := range additive {
		result, _ = apply(result, op, terms[i+1])
	}
	return result
}

// Complexity scores an expression by reducing it strictly left to right and
// summing the absolute value of the first operand and of every intermediate
// result. Division by zero stops the accumulation early and keeps what was
// summed so far. Malformed operands make the score NaN.
func Complexity(s string) float64 {
	operands, ops := Split(s)
	value := parseOperand(operands[0])
	complexity := math.Abs(value)
	for i, op := range ops {
		v, ok := apply(value, op, parseOperand(operands[i+1]))
		if !ok {
			break
		}
		value = v
		complexity += math.Abs(value)
	}
	return complexity
}

// Mirror reverses an expression end to end: operands and operators are each
// reversed independently and then re-interleaved, so "8-3÷1" becomes "1÷3-8".
func Mirror(s string) string {
	operands, ops := Split(s)
	vals := make([]string, len(operands))
	for i, v := range operands {
		vals[len(operands)-1-i] = v
	}
	rev := make([]rune, len(ops))
	for i, op := range ops {
		rev[len(ops)-1-i] = op
	}
	return Join(vals, rev)
}

// Spaced trims every operand and pads every operator with a single space on
// each side. A leading sign stays attached to its operand.
func Spaced(s string) string {
	operands, ops := Split(s)
	var b strings.Builder
	for i, v := range operands {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteRune(ops[i-1])
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(v))
	}
	return b.String()
}

// Prompt renders the question line shown for an expression, e.g. "2 + 2 = ".
func Prompt(s string) string {
	return Spaced(s) + " = "
}

// FormatNumber renders a value the way answers are typed: shortest decimal
// form, no exponent for ordinary magnitudes, "NaN" when not computable.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses a typed number, accepting a comma as the decimal
// separator. ok is false for empty, non-numeric or non-finite input.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
