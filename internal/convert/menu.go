package convert

import (
	"strconv"

	"github.com/ekisa-team/yoloconv/internal/model"
)

// Option is one numbered menu entry.
type Option[T any] struct {
	Key   string
	Label string
	Value T
}

// Menu is an ordered list of numbered options.
type Menu[T any] []Option[T]

// Lookup returns the value for key.
func (m Menu[T]) Lookup(key string) (T, bool) {
	for _, o := range m {
		if o.Key == key {
			return o.Value, true
		}
	}
	var zero T
	return zero, false
}

// Keys returns the option keys in order.
func (m Menu[T]) Keys() []string {
	keys := make([]string, len(m))
	for i, o := range m {
		keys[i] = o.Key
	}
	return keys
}

// FormatMenu returns the output format menu offered for kind.
func FormatMenu(kind model.Kind) Menu[model.Format] {
	targets := kind.Targets()
	menu := make(Menu[model.Format], len(targets))
	for i, f := range targets {
		menu[i] = Option[model.Format]{Key: strconv.Itoa(i + 1), Label: f.Label(), Value: f}
	}
	return menu
}

// Precision selectors.
const (
	PrecisionHalfKey = "1"
	PrecisionFullKey = "2"
)

// PrecisionMenu is the engine precision menu. Its values are the half-precision flag.
var PrecisionMenu = Menu[bool]{
	{Key: PrecisionHalfKey, Label: "FP16 (Recommended - Faster, Less Memory)", Value: true},
	{Key: PrecisionFullKey, Label: "FP32 (Full Precision - Higher Accuracy)", Value: false},
}
