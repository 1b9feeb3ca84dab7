// Package persona defines the closed set of quiz personas and their display order.
package persona

import (
	"fmt"
)

// Key identifies one of the four personas. The zero value is invalid so that
// an unset Key is never mistaken for the first persona.
type Key int

const (
	invalid Key = iota
	ResonantEmpath
	VerdantCurator
	SymmetrySavant
	VitalityAlchemist
)

// Count is the number of personas.
const Count = 4

// keyNames is indexed by Key.
var keyNames = [...]string{
	invalid:           "",
	ResonantEmpath:    "resonant_empath",
	VerdantCurator:    "verdant_curator",
	SymmetrySavant:    "symmetry_savant",
	VitalityAlchemist: "vitality_alchemist",
}

var badges = [...]string{
	invalid:           "",
	ResonantEmpath:    "💫",
	VerdantCurator:    "🌿",
	SymmetrySavant:    "📐",
	VitalityAlchemist: "⚡",
}

// Keys returns all personas in display order. Display order is also the
// tie-break order: earlier keys win ties.
func Keys() []Key {
	return []Key{ResonantEmpath, VerdantCurator, SymmetrySavant, VitalityAlchemist}
}

// Valid reports whether k is one of the four personas.
func (k Key) Valid() bool {
	return k >= ResonantEmpath && k <= VitalityAlchemist
}

// Index returns the zero-based display position of k, or -1 if k is invalid.
func (k Key) Index() int {
	if !k.Valid() {
		return -1
	}
	return int(k - ResonantEmpath)
}

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("persona(%d)", int(k))
	}
	return keyNames[k]
}

// Badge returns the emoji badge for k.
func (k Key) Badge() string {
	if !k.Valid() {
		return ""
	}
	return badges[k]
}

// ParseKey converts the snake_case name of a persona into a Key.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys() {
		if keyNames[k] == s {
			return k, nil
		}
	}
	return invalid, fmt.Errorf("unknown persona %q", s)
}

func (k Key) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("marshal invalid persona %d", int(k))
	}
	return []byte(keyNames[k]), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Persona is the descriptive metadata for one Key.
type Persona struct {
	Key        Key
	Title      string
	Summary    string
	Perception string
}

// Badge returns the persona's emoji badge.
func (p Persona) Badge() string {
	return p.Key.Badge()
}
