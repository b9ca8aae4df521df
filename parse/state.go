package parse

import (
	"github.com/ef-ds/deque"
)

// State is a cursor over the argument list of one parse
type State interface {
	Next() (string, bool)  // Remove and return the next argument
	Peek() (string, bool)  // Return the next argument without consuming it
	Push(args ...string)   // Put arguments back in front of the remaining ones
	Remaining() []string   // Drain and return all remaining arguments
	Pos() int              // Number of arguments taken by Next so far
	Len() int              // Number of arguments left
}

// DefaultState is the default implementation of the State interface
type DefaultState struct {
	pos  int
	args *deque.Deque
}

// NewState creates a new State instance with the given argument list
func NewState(args []string) State {
	d := deque.New()
	for _, a := range args {
		d.PushBack(a)
	}
	return &DefaultState{args: d}
}

// Next removes and returns the next argument
func (s *DefaultState) Next() (string, bool) {
	v, ok := s.args.PopFront()
	if !ok {
		return "", false
	}
	s.pos++
	return v.(string), true
}

// Peek returns the next argument without consuming it
func (s *DefaultState) Peek() (string, bool) {
	v, ok := s.args.Front()
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Push puts args back in front of the remaining arguments, preserving their order
func (s *DefaultState) Push(args ...string) {
	for i := len(args) - 1; i >= 0; i-- {
		s.args.PushFront(args[i])
	}
}

// Remaining drains the state and returns every argument left
func (s *DefaultState) Remaining() []string {
	rest := make([]string, 0, s.args.Len())
	for {
		a, ok := s.Next()
		if !ok {
			return rest
		}
		rest = append(rest, a)
	}
}

// Pos returns the number of arguments consumed so far
func (s *DefaultState) Pos() int {
	return s.pos
}

// Len returns the number of arguments left
func (s *DefaultState) Len() int {
	return s.args.Len()
}
