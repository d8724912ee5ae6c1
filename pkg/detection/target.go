package detection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTargetType is returned when a target model name is not recognised
var ErrUnknownTargetType = errors.New("unknown target model")

// TargetType selects the statistical fluctuation model of the target
type TargetType int

const (
	Swerling0 TargetType = iota // non-fluctuating
	Swerling1
	Swerling2
	Swerling3
	Swerling4
)

var targetNames = [...]string{"Swerling 0", "Swerling 1", "Swerling 2", "Swerling 3", "Swerling 4"}

// TargetTypes lists every supported model in order
func TargetTypes() []TargetType {
	return []TargetType{Swerling0, Swerling1, Swerling2, Swerling3, Swerling4}
}

func (t TargetType) String() string {
	if t.Valid() {
		return targetNames[t]
	}
	return fmt.Sprintf("TargetType(%d)", int(t))
}

// Valid reports whether t is one of the known models
func (t TargetType) Valid() bool {
	return t >= Swerling0 && t <= Swerling4
}

// MarshalText encodes the model by its display name
func (t TargetType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTargetType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts anything ParseTargetType does
func (t *TargetType) UnmarshalText(b []byte) error {
	parsed, err := ParseTargetType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTargetType maps a model name to a TargetType. It accepts the display
// names ("Swerling 0".."Swerling 4"), roman numerals ("Swerling III"),
// compact forms ("swerling3", "sw3") and "non-fluctuating"/"steady" for
// Swerling 0, all case-insensitive.
func ParseTargetType(s string) (TargetType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	switch key {
	case "swerling0", "sw0", "0", "nonfluctuating", "steady", "marcum":
		return Swerling0, nil
	case "swerling1", "swerlingi", "sw1", "1":
		return Swerling1, nil
	case "swerling2", "swerlingii", "sw2", "2":
		return Swerling2, nil
	case "swerling3", "swerlingiii", "sw3", "3":
		return Swerling3, nil
	case "swerling4", "swerlingiv", "sw4", "4":
		return Swerling4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTargetType, s)
}
