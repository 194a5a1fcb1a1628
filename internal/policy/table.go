// Package policy holds the precomputed opponent policy for the pong game:
// an immutable table from discretized state to paddle action.
package policy

import (
	"fmt"
	"sort"
)

// Action moves the opponent paddle one speed unit up (-1), down (1) or not at all.
type Action int8

const (
	MoveUp   Action = -1
	Stay     Action = 0
	MoveDown Action = 1
)

func (a Action) Valid() bool { return a >= MoveUp && a <= MoveDown }

func (a Action) String() string {
	switch a {
	case MoveUp:
		return "up"
	case Stay:
		return "stay"
	case MoveDown:
		return "down"
	default:
		return fmt.Sprintf("Action(%d)", int8(a))
	}
}

// Bins are the bin counts a game discretizes with.
type Bins struct {
	Paddle int
	BallX  int
	BallY  int
}

// Table is read-only after construction and safe for concurrent lookups.
type Table struct {
	entries map[Key]Action
}

// NewTable copies entries into a table after validating every key and action.
func NewTable(entries map[Key]Action) (*Table, error) {
	t := &Table{entries: make(map[Key]Action, len(entries))}
	for k, a := range entries {
		if err := k.validate(); err != nil {
			return nil, &LoadError{Key: k.String(), Err: err}
		}
		if !a.Valid() {
			return nil, &LoadError{Key: k.String(), Err: fmt.Errorf("action %d not in {-1, 0, 1}", a)}
		}
		t.entries[k] = a
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.entries) }

func (t *Table) Lookup(k Key) (Action, bool) {
	a, ok := t.entries[k]
	return a, ok
}

// ActionFor returns the stored action, or Stay for states the policy never saw.
func (t *Table) ActionFor(k Key) Action {
	if a, ok := t.entries[k]; ok {
		return a
	}
	return Stay
}

// Validate rejects keys whose bins fall outside the given bin counts.
func (t *Table) Validate(b Bins) error {
	for _, k := range t.Keys() {
		if k.Paddle >= b.Paddle || k.BallX >= b.BallX || k.BallY >= b.BallY {
			return &LoadError{Key: k.String(), Err: fmt.Errorf("bin out of range for %d/%d/%d bins", b.Paddle, b.BallX, b.BallY)}
		}
	}
	return nil
}

// Keys returns the table keys in a stable order.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Paddle != b.Paddle {
			return a.Paddle < b.Paddle
		}
		if a.BallX != b.BallX {
			return a.BallX < b.BallX
		}
		if a.BallY != b.BallY {
			return a.BallY < b.BallY
		}
		if a.DX != b.DX {
			return a.DX < b.DX
		}
		return a.DY < b.DY
	})
	return keys
}

// Stats counts how often each action appears in the table.
func (t *Table) Stats() map[Action]int {
	stats := map[Action]int{MoveUp: 0, Stay: 0, MoveDown: 0}
	for _, a := range t.entries {
		stats[a]++
	}
	return stats
}
