// Package cleaner provides composable text transforms for cleaning
// HTML-encoded values: entity decoding, tag stripping, URL and email
// scrubbing, and whitespace normalization.
//
// Every transform is a pure function of its input. The Cleaner
// implementations wrap those functions so they can be chained and memoized.
package cleaner

// Cleaner transforms a single text value.
type Cleaner interface {
	// Clean transforms the input text.
	// Implementations in this package never return an error; the error
	// return exists so wrapping cleaners can propagate failures.
	Clean(text string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// Func adapts a pure string transform to the Cleaner interface.
type Func struct {
	name string
	fn   func(string) string
}

// NewFunc creates a named Cleaner from fn.
func NewFunc(name string, fn func(string) string) *Func {
	return &Func{name: name, fn: fn}
}

// Clean applies the wrapped transform.
func (f *Func) Clean(text string) (string, error) {
	return f.fn(text), nil
}

// Name returns the transform name.
func (f *Func) Name() string {
	return f.name
}
