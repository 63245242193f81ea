package models

import (
	"fmt"
	"strings"
)

// RPGClass is a character class. The zero value is Knight.
type RPGClass int

const (
	Knight RPGClass = iota
	Mage
	Cleric
)

var classNames = [...]string{"Knight", "Mage", "Cleric"}

func (c RPGClass) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("RPGClass(%d)", int(c))
	}
	return classNames[c]
}

// Valid reports whether c is one of the known classes.
func (c RPGClass) Valid() bool {
	return c >= Knight && c <= Cleric
}

// ParseRPGClass accepts a class name in any case.
func ParseRPGClass(s string) (RPGClass, error) {
	for i, name := range classNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return RPGClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown class %q", s)
}

func (c RPGClass) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown class %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *RPGClass) UnmarshalText(b []byte) error {
	parsed, err := ParseRPGClass(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Character is the persisted record. UserID is nil for characters created
// without an owner.
type Character struct {
	ID           int64
	Name         string
	HitPoints    int
	Strength     int
	Defense      int
	Intelligence int
	Class        RPGClass
	UserID       *int64
	PortraitKey  string
}

// Character defaults applied to fields left at their zero value on creation.
const (
	DefaultCharacterName = "Frodo"
	DefaultHitPoints     = 100
	DefaultAttribute     = 10
)

// ApplyDefaults fills zero-valued fields with the defaults for a new character.
func (c *Character) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultCharacterName
	}
	if c.HitPoints == 0 {
		c.HitPoints = DefaultHitPoints
	}
	if c.Strength == 0 {
		c.Strength = DefaultAttribute
	}
	if c.Defense == 0 {
		c.Defense = DefaultAttribute
	}
	if c.Intelligence == 0 {
		c.Intelligence = DefaultAttribute
	}
}
