package policy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// LoadError reports the policy entry that could not be used.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %v", dynamo.ErrPolicyLoad, e.Err)
	}
	return fmt.Sprintf("%v: entry %s: %v", dynamo.ErrPolicyLoad, e.Key, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{dynamo.ErrPolicyLoad, e.Err}
}

// Load reads a JSON policy file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a JSON object mapping tuple text such as "(3, 10, 5, 1, -1)"
// to an integer action. Any malformed entry, repeated key or trailing data
// fails the whole table.
func Decode(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if tok, err := dec.Token(); err != nil {
		return nil, &LoadError{Err: err}
	} else if tok != json.Delim('{') {
		return nil, &LoadError{Err: fmt.Errorf("policy is not a JSON object")}
	}

	entries := make(map[Key]Action)
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		text, ok := tok.(string)
		if !ok {
			return nil, &LoadError{Err: fmt.Errorf("unexpected token %v", tok)}
		}
		if seen[text] {
			return nil, &LoadError{Key: text, Err: fmt.Errorf("key appears more than once")}
		}
		seen[text] = true

		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return nil, &LoadError{Key: text, Err: err}
		}
		k, err := ParseKey(text)
		if err != nil {
			return nil, &LoadError{Key: text, Err: err}
		}
		v, err := strconv.Atoi(num.String())
		if err != nil {
			return nil, &LoadError{Key: text, Err: fmt.Errorf("action %q is not an integer", num)}
		}
		a := Action(v)
		if v < -1 || v > 1 {
			return nil, &LoadError{Key: text, Err: fmt.Errorf("action %d not in {-1, 0, 1}", v)}
		}
		if prev, dup := entries[k]; dup && prev != a {
			return nil, &LoadError{Key: text, Err: fmt.Errorf("conflicts with another spelling of %s", k)}
		}
		entries[k] = a
	}

	if _, err := dec.Token(); err != nil {
		return nil, &LoadError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &LoadError{Err: fmt.Errorf("unexpected data after the policy object")}
	}
	return NewTable(entries)
}
