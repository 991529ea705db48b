package prefs

// Preference names persisted by the list pages. The same name is used
// for the session channel key and the cookie key.
const (
	ExpenseViewKey        = "expense_view_preference"
	RestaurantViewKey     = "restaurant_view_preference"
	ExpensePageKey        = "expensePage"
	ExpensePageSizeKey    = "expense_page_size"
	RestaurantPageSizeKey = "restaurant_page_size"
)

// KnownName reports whether name is one of the preference names this
// service persists. Unknown names are rejected at the HTTP boundary.
func KnownName(name string) bool {
	switch name {
	case ExpenseViewKey, RestaurantViewKey, ExpensePageKey, ExpensePageSizeKey, RestaurantPageSizeKey:
		return true
	}
	return false
}

// Channel is a single persistence channel for preference values.
// Get returns "" with a nil error when the name is simply absent;
// a non-nil error means the channel itself is unavailable.
type Channel interface {
	Get(name string) (string, error)
	Set(name, value string) error
}

// Store persists small UI preference values through two independent
// channels. The primary channel (session storage) can be disabled by
// user privacy settings while cookies remain available, and the
// reverse holds in cross-origin embedding, so reads fall through and
// writes go to both. Neither operation surfaces an error.
type Store struct {
	primary  Channel
	fallback Channel
}

// NewStore builds a store over a primary channel and a cookie
// fallback. Either channel may be nil and is then skipped.
func NewStore(primary, fallback Channel) *Store {
	return &Store{primary: primary, fallback: fallback}
}

// Get returns the stored value for name, consulting the primary
// channel first and the fallback on a miss or a channel failure. The
// second return is false when neither channel holds a value.
func (s *Store) Get(name string) (string, bool) {
	if s.primary != nil {
		if value, err := s.primary.Get(name); err == nil && value != "" {
			return value, true
		}
	}
	if s.fallback != nil {
		if value, err := s.fallback.Get(name); err == nil && value != "" {
			return value, true
		}
	}
	return "", false
}

// Set writes the value to the primary channel best-effort and to the
// fallback unconditionally. Channel failures are swallowed.
func (s *Store) Set(name, value string) {
	if s.primary != nil {
		_ = s.primary.Set(name, value)
	}
	if s.fallback != nil {
		_ = s.fallback.Set(name, value)
	}
}
