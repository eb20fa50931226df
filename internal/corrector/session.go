package corrector

// Session holds the last correction response for interactive lookup, so the
// explanation pane can be repopulated on row selection without a new
// request. It also carries a generation counter: every submission takes a
// token via Begin, and only the completion holding the current token may
// write results, so a stale response can never overwrite state from a newer
// request.
//
// Session is owned by a single event loop and needs no locking.
type Session struct {
	results    []Result
	generation uint64
}

// Begin starts a new correction attempt and returns its token. Any
// previously issued token becomes stale.
func (s *Session) Begin() uint64 {
	s.generation++
	return s.generation
}

// Accept reports whether a completion holding tok is still the current
// attempt.
func (s *Session) Accept(tok uint64) bool {
	return tok == s.generation
}

// Set replaces the held results wholesale. The previous response is never
// merged with the new one.
func (s *Session) Set(results []Result) {
	s.results = results
}

// Clear discards the held results. In-flight tokens stay valid; clearing
// state does not cancel a pending request.
func (s *Session) Clear() {
	s.results = nil
}

// Result returns the result at position i. The second return is false when i
// is out of range of the current state.
func (s *Session) Result(i int) (Result, bool) {
	if i < 0 || i >= len(s.results) {
		return Result{}, false
	}
	return s.results[i], true
}

// Results returns the held results. Callers must not mutate the slice.
func (s *Session) Results() []Result {
	return s.results
}

// Len returns the number of held results.
func (s *Session) Len() int {
	return len(s.results)
}
