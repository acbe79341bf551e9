// Package stack provides the LIFO used for nested construction scopes.
package stack

// Stack is a generic LIFO. The zero value is an empty stack ready for use.
type Stack[T any] struct {
	items []T
}

// New creates a new empty [Stack].
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds an element to the top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element. Returns the zero value and false
// if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	top := s.items[len(s.items)-1]
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Current returns the top element without removing it.
func (s *Stack[T]) Current() (T, bool) {
	return s.Peek(0)
}

// Peek returns the element n levels below the top; Peek(0) is the top.
func (s *Stack[T]) Peek(n int) (T, bool) {
	i := len(s.items) - 1 - n
	if n < 0 || i < 0 {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Depth returns the number of elements on the stack.
func (s *Stack[T]) Depth() int {
	return len(s.items)
}

// Items returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Items() []T {
	return append([]T(nil), s.items...)
}
