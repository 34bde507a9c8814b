package imp

import (
	"errors"
	"fmt"
	"image"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ErrUnknownConverter is returned when looking up a converter that doesn't
// exist.
var ErrUnknownConverter = errors.New("unknown converter")

// A Converter is one grayscale conversion strategy.
type Converter struct {
	Name    string
	Convert func(*RGB) *image.Gray
}

// Converters returns every available converter. The first one is the
// baseline the others are checked against.
func Converters() []Converter {
	return []Converter{
		{Name: "vectorized", Convert: Vectorized},
		{Name: "compiled", Convert: Compiled},
		{Name: "compiled_loop", Convert: CompiledLoop},
	}
}

// Lookup finds a converter by name.
func Lookup(name string) (Converter, error) {
	all := Converters()
	for _, c := range all {
		if c.Name == name {
			return c, nil
		}
	}

	best, score := "", len(name)
	for _, c := range all {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(c.Name), levenshtein.DefaultOptions)
		if d < score {
			best, score = c.Name, d
		}
	}
	if best == "" {
		return Converter{}, fmt.Errorf("%w %q", ErrUnknownConverter, name)
	}
	return Converter{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownConverter, name, best)
}

// Select returns the named converters in the given order, or all of them if
// names is empty. Duplicates are ignored.
func Select(names []string) ([]Converter, error) {
	if len(names) == 0 {
		return Converters(), nil
	}

	res := make([]Converter, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		c, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		res = append(res, c)
	}
	return res, nil
}
