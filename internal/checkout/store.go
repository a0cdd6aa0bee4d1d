package checkout

// Reaction runs when a field changes value
type Reaction func(old, new string)

type watcher struct {
	name    string
	compute func() string
	last    string
	react   func(prev, next string)
}

// Store is the observer container behind the checkout form. A write that
// changes a field runs that field's reactions once, in registration order,
// before Set returns, then re-evaluates the derived watchers. Store is not
// safe for concurrent use; the Controller serializes access.
type Store struct {
	form      FormState
	reactions map[Field][]Reaction
	watchers  []*watcher
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		form:      make(FormState),
		reactions: make(map[Field][]Reaction),
	}
}

// Get returns the current value of f
func (s *Store) Get(f Field) string {
	return s.form[f]
}

// Form exposes the live form; callers must not mutate it
func (s *Store) Form() FormState {
	return s.form
}

// On registers a reaction for f
func (s *Store) On(f Field, r Reaction) {
	s.reactions[f] = append(s.reactions[f], r)
}

// Watch registers a derived value. react runs whenever compute yields a
// different result than on the previous evaluation.
func (s *Store) Watch(name string, compute func() string, react func(prev, next string)) {
	s.watchers = append(s.watchers, &watcher{name: name, compute: compute, react: react})
}

// Set writes f and reports whether the value changed. Unchanged writes run
// nothing.
func (s *Store) Set(f Field, value string) bool {
	old := s.form[f]
	if old == value {
		return false
	}
	if value == "" {
		delete(s.form, f)
	} else {
		s.form[f] = value
	}

	for _, r := range s.reactions[f] {
		r(old, value)
	}
	s.Notify()
	return true
}

// Notify re-evaluates every watcher. Call it after state outside the form
// changes.
func (s *Store) Notify() {
	for _, w := range s.watchers {
		next := w.compute()
		if next == w.last {
			continue
		}
		prev := w.last
		w.last = next
		w.react(prev, next)
	}
}
