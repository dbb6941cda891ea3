// Package calc provides the four-function calculator engine: an
// immediate-execution state machine over a text display. Keying an
// operator applies any pending operation first, so chains like
// 2 + 3 × 4 evaluate left to right.
package calc

import (
	"math"
	"strconv"
)

// Op is a calculator operation key.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "×"
	OpDiv Op = "÷"
)

// Engine holds the calculator state. The zero value is not usable;
// create one with NewEngine.
type Engine struct {
	display  string
	previous *float64
	op       Op
	waiting  bool // next digit starts a new operand
}

// NewEngine returns a cleared calculator showing "0".
func NewEngine() *Engine {
	return &Engine{display: "0"}
}

// Display returns the current display text.
func (e *Engine) Display() string {
	return e.display
}

// InputDigit appends a digit to the current operand, or starts a new
// operand after an operator or equals.
func (e *Engine) InputDigit(digit byte) {
	if digit < '0' || digit > '9' {
		return
	}
	d := string(digit)
	if e.waiting {
		e.display = d
		e.waiting = false
		return
	}
	if e.display == "0" {
		e.display = d
		return
	}
	e.display += d
}

// InputDecimal appends a decimal point; a second point in the same
// operand is ignored.
func (e *Engine) InputDecimal() {
	if e.waiting {
		e.display = "0."
		e.waiting = false
		return
	}
	for i := 0; i < len(e.display); i++ {
		if e.display[i] == '.' {
			return
		}
	}
	e.display += "."
}

// InputOperation keys an operator, applying any pending operation to the
// current operand first.
func (e *Engine) InputOperation(op Op) {
	value := e.parseDisplay()

	if e.previous == nil {
		e.previous = &value
	} else if e.op != "" {
		result := calculate(*e.previous, value, e.op)
		e.display = formatValue(result)
		e.previous = &result
	}

	e.waiting = true
	e.op = op
}

// Equals applies the pending operation and clears it. A bare equals with
// nothing pending changes nothing.
func (e *Engine) Equals() {
	if e.previous == nil || e.op == "" {
		return
	}
	result := calculate(*e.previous, e.parseDisplay(), e.op)
	e.display = formatValue(result)
	e.previous = nil
	e.op = ""
	e.waiting = true
}

// Clear resets the calculator to its initial state.
func (e *Engine) Clear() {
	e.display = "0"
	e.previous = nil
	e.op = ""
	e.waiting = false
}

func (e *Engine) parseDisplay() float64 {
	v, _ := strconv.ParseFloat(e.display, 64)
	return v
}

// calculate applies op to the operands. Division by zero yields 0.
func calculate(first, second float64, op Op) float64 {
	switch op {
	case OpAdd:
		return first + second
	case OpSub:
		return first - second
	case OpMul:
		return first * second
	case OpDiv:
		if second == 0 {
			return 0
		}
		return first / second
	default:
		return second
	}
}

// formatValue renders a result the way the display shows numbers: plain
// decimal notation up to 1e21 and down to 1e-6, scientific beyond.
func formatValue(v float64) string {
	abs := math.Abs(v)
	if v != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
