// Package orbital models hydrogen-like electron orbitals: the quantum
// numbers that select one, and the radial and angular parts of its
// wavefunction.
package orbital

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when quantum numbers arriving from outside the
// stepping transitions violate n >= 1, 0 <= l < n, |m| <= l.
var ErrInvalidState = errors.New("invalid quantum numbers")

// QuantumState holds the principal (N), orbital (L) and magnetic (M)
// quantum numbers.
//
// The stepping methods never leave the state outside n >= 1, 0 <= l <= n-1,
// -l <= m <= l. Each reports whether anything changed.
type QuantumState struct {
	N int `json:"n" yaml:"n"`
	L int `json:"l" yaml:"l"`
	M int `json:"m" yaml:"m"`
}

// Ground returns the 1s state (n=1, l=0, m=0).
func Ground() QuantumState {
	return QuantumState{N: 1}
}

// Validate reports whether the state satisfies the orbital invariants.
func (q QuantumState) Validate() error {
	switch {
	case q.N < 1:
		return fmt.Errorf("%w: n=%d must be >= 1", ErrInvalidState, q.N)
	case q.L < 0 || q.L > q.N-1:
		return fmt.Errorf("%w: l=%d must be in [0, %d]", ErrInvalidState, q.L, q.N-1)
	case q.M < -q.L || q.M > q.L:
		return fmt.Errorf("%w: m=%d must be in [%d, %d]", ErrInvalidState, q.M, -q.L, q.L)
	}
	return nil
}

// String formats the state the way the viewer's heads-up text shows it.
func (q QuantumState) String() string {
	return fmt.Sprintf("n=%d, l=%d, m=%d", q.N, q.L, q.M)
}

// IncN raises n. There is no upper bound.
func (q *QuantumState) IncN() bool {
	q.N++
	return true
}

// DecN lowers n, pulling l (and through it m) down when l would exceed n-1.
func (q *QuantumState) DecN() bool {
	if q.N <= 1 {
		return false
	}
	q.N--
	if q.L > q.N-1 {
		q.DecL()
	}
	return true
}

// IncL raises l while l < n-1.
func (q *QuantumState) IncL() bool {
	if q.L >= q.N-1 {
		return false
	}
	q.L++
	return true
}

// DecL lowers l, first pulling m one step toward zero if it sits on either
// edge of [-l, l].
func (q *QuantumState) DecL() bool {
	if q.L <= 0 {
		return false
	}
	if q.M == q.L {
		q.DecM()
	} else if q.M == -q.L {
		q.IncM()
	}
	q.L--
	return true
}

// IncM raises m while m < l.
func (q *QuantumState) IncM() bool {
	if q.M >= q.L {
		return false
	}
	q.M++
	return true
}

// DecM lowers m while m > -l.
func (q *QuantumState) DecM() bool {
	if q.M <= -q.L {
		return false
	}
	q.M--
	return true
}
