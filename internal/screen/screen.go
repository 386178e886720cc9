// Package screen finds the host's active view among nested screens.
package screen

import "sync"

// Ref identifies a screen
type Ref string

// Resolver exposes the host's screen chain: a root screen and, for each
// screen, the one stacked on top of it.
type Resolver interface {
	Current() Ref
	Child(Ref) (Ref, bool)
}

// Deepest walks the child chain from the root and returns the topmost screen.
func Deepest(r Resolver) Ref {
	ref := r.Current()
	for {
		child, ok := r.Child(ref)
		if !ok {
			return ref
		}
		ref = child
	}
}

// Stack is a Resolver backed by an ordered list of screens, root first.
type Stack struct {
	mu      sync.RWMutex
	screens []Ref
}

// NewStack creates a stack with root as its only screen
func NewStack(root Ref) *Stack {
	return &Stack{screens: []Ref{root}}
}

// Current returns the root screen
func (s *Stack) Current() Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screens[0]
}

// Child returns the screen directly above the topmost occurrence of ref
func (s *Stack) Child(ref Ref) (Ref, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.screens) - 1; i >= 0; i-- {
		if s.screens[i] != ref {
			continue
		}
		if i == len(s.screens)-1 {
			return "", false
		}
		return s.screens[i+1], true
	}
	return "", false
}

// Push opens ref on top of the current screens
func (s *Stack) Push(ref Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screens = append(s.screens, ref)
}

// Pop closes the top screen and returns it. The root is never removed.
func (s *Stack) Pop() (Ref, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.screens) == 1 {
		return "", false
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top, true
}

// Depth returns the number of open screens including the root
func (s *Stack) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.screens)
}
