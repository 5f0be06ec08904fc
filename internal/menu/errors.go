package menu

import (
	"fmt"
	"strings"
)

// Positions lists the screen edges a menu can anchor to.
var Positions = []string{"left", "right"}

// ConfigurationError reports a fatal problem detected while constructing a
// menu. Nothing is attached when one is returned.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidatePosition checks that pos is one of the supported edge anchors.
func ValidatePosition(pos string) error {
	for _, valid := range Positions {
		if pos == valid {
			return nil
		}
	}
	return &ConfigurationError{
		Field:  "position",
		Value:  pos,
		Reason: "must be one of: " + strings.Join(Positions, ", "),
	}
}
