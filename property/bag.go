package property

import (
	"iter"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// Bag holds the key/value properties passed to runtime initialization.
//
// Entries enumerate in the order their keys were first added. Overwriting a
// key keeps its position. A Bag is not safe for concurrent use.
type Bag struct {
	props *orderedmap.OrderedMap[string, string]
}

// NewBag returns an empty bag sized for twice the common property count.
func NewBag() *Bag {
	return &Bag{
		props: orderedmap.New[string, string](2 * int(NumCommonProperties)),
	}
}

// Add sets key to value. It returns true if the key was newly added and
// false if an existing value was overwritten or the pair was rejected.
//
// Keys must be non-empty, and neither key nor value may contain a NUL byte,
// since both cross into the runtime as C strings. Rejected pairs leave the
// bag unchanged.
func (b *Bag) Add(key, value string) bool {
	if !validKey(key) || !validValue(value) {
		return false
	}

	old, present := b.props.Set(key, value)
	if present {
		Logger().Debug("overwriting property",
			zap.String("key", key),
			zap.String("new", value),
			zap.String("old", old))
		return false
	}
	return true
}

// AddCommon sets a common property. See Add.
func (b *Bag) AddCommon(p CommonProperty, value string) bool {
	return b.Add(p.String(), value)
}

// Get returns the value stored for key.
func (b *Bag) Get(key string) (string, bool) {
	return b.props.Get(key)
}

// GetCommon returns the value stored for a common property.
func (b *Bag) GetCommon(p CommonProperty) (string, bool) {
	return b.Get(p.String())
}

// Remove deletes key. Removing an absent key is a no-op.
func (b *Bag) Remove(key string) {
	b.props.Delete(key)
}

// Count returns the number of distinct keys.
func (b *Bag) Count() int {
	return b.props.Len()
}

// All iterates over every entry exactly once.
func (b *Bag) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for pair := b.props.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Enumerate calls visit once per entry.
func (b *Bag) Enumerate(visit func(key, value string)) {
	for k, v := range b.All() {
		visit(k, v)
	}
}

// Log writes every property to the package logger at debug level.
func (b *Bag) Log() {
	l := Logger()
	for k, v := range b.All() {
		l.Debug("property", zap.String("key", k), zap.String("value", v))
	}
}

func validKey(key string) bool {
	return key != "" && validValue(key)
}

func validValue(value string) bool {
	return !strings.ContainsRune(value, 0)
}
