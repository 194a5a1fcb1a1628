package policy

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is the discretized game state used for policy lookup. It is a
// comparable struct, so table lookups are by value rather than by text.
type Key struct {
	Paddle int // opponent paddle bin
	BallX  int
	BallY  int
	DX     int // sign of the ball's horizontal velocity, -1 or 1
	DY     int // sign of the ball's vertical velocity, -1 or 1
}

const keyArity = 5

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %d)", k.Paddle, k.BallX, k.BallY, k.DX, k.DY)
}

func (k Key) validate() error {
	if k.Paddle < 0 || k.BallX < 0 || k.BallY < 0 {
		return fmt.Errorf("negative bin in %s", k)
	}
	if !isSign(k.DX) || !isSign(k.DY) {
		return fmt.Errorf("velocity signs must be -1 or 1 in %s", k)
	}
	return nil
}

func isSign(v int) bool { return v == -1 || v == 1 }

// ParseKey reads the textual tuple form "(p, x, y, dx, dy)". Nothing but
// five comma separated integers inside parentheses is accepted.
func ParseKey(text string) (Key, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Key{}, fmt.Errorf("key %q is not a parenthesized tuple", text)
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != keyArity {
		return Key{}, fmt.Errorf("key %q has %d fields, want %d", text, len(fields), keyArity)
	}

	var vals [keyArity]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Key{}, fmt.Errorf("key %q field %d: %w", text, i, err)
		}
		vals[i] = v
	}

	k := Key{Paddle: vals[0], BallX: vals[1], BallY: vals[2], DX: vals[3], DY: vals[4]}
	if err := k.validate(); err != nil {
		return Key{}, err
	}
	return k, nil
}
