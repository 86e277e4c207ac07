package core

// Marshaler abstracts serialization so savers can be tested without a
// real encoder.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
