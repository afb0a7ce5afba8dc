package payload

import "slices"

// UpdateSet is the ordered set of fields a partial update writes, keyed by
// entity field name. It carries no persistence logic.
type UpdateSet struct {
	fields []string
	values map[string]any
}

// Set adds or replaces field. Insertion order is kept.
func (s *UpdateSet) Set(field string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[field]; !ok {
		s.fields = append(s.fields, field)
	}
	s.values[field] = value
}

// Get returns the value for field.
func (s UpdateSet) Get(field string) (any, bool) {
	v, ok := s.values[field]
	return v, ok
}

// Has reports whether field is part of the set.
func (s UpdateSet) Has(field string) bool {
	_, ok := s.values[field]
	return ok
}

// Fields returns the field names in insertion order.
func (s UpdateSet) Fields() []string {
	return slices.Clone(s.fields)
}

func (s UpdateSet) Len() int { return len(s.fields) }

func (s UpdateSet) IsEmpty() bool { return len(s.fields) == 0 }

// Put sets field only when o is present.
func Put[T any](s *UpdateSet, field string, o Optional[T]) {
	if o.Set {
		s.Set(field, o.Value)
	}
}
