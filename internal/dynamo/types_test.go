package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("Clone did not create independent copy")
	}
}

func TestBox(t *testing.T) {
	b, err := NewBox([]float64{-2}, []float64{2})
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	if b.Dim() != 1 {
		t.Errorf("expected dim 1, got %d", b.Dim())
	}
	if !b.Contains(State{1.5}) {
		t.Error("expected 1.5 inside box")
	}
	if b.Contains(State{2.5}) {
		t.Error("expected 2.5 outside box")
	}
	if b.Contains(State{0, 0}) {
		t.Error("expected dimension mismatch to be outside box")
	}
	if b.Contains(Control{math.NaN()}) {
		t.Error("expected NaN outside box")
	}

	unbounded, err := NewBox([]float64{math.Inf(-1)}, []float64{math.Inf(1)})
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	if !unbounded.Contains(State{1e300}) {
		t.Error("unbounded box should contain any finite value")
	}
}

func TestBox_Invalid(t *testing.T) {
	if _, err := NewBox([]float64{1}, []float64{0}); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if _, err := NewBox([]float64{1}, []float64{2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: 3, State: State{0, 0}, Wrapped: ErrInvalidArgument}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("StepError should unwrap to the wrapped error")
	}
	if err.Error() != ErrInvalidArgument.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
