package configuration

import (
	"fmt"
	"time"

	"github.com/dirmirror/dirmirror/pkg/logging"
)

// settingOption describes one allowed key in the "settings" block: whether
// it requires a parameter value and how to validate/apply it. This is the
// Go-native replacement for the source prototype's dynamic allow-list
// table (spec.md §4.7 step 3, §9's "prototype tables" note).
type settingOption struct {
	// required indicates the key must carry a non-empty value.
	required bool
	// apply validates the raw value and stores it into Settings.
	apply func(*Settings, string) error
}

var settingOptions = map[string]settingOption{
	"loglevel": {
		required: true,
		apply: func(s *Settings, value string) error {
			if _, ok := logging.NameToLevel(value); !ok {
				return fmt.Errorf("loglevel must be one of DEBUG, NORMAL, VERBOSE, ERROR, got %q", value)
			}
			s.LogLevel = value
			return nil
		},
	},
	"statusfile": {
		required: true,
		apply: func(s *Settings, value string) error {
			s.StatusFile = value
			return nil
		},
	},
	"maxProcesses": {
		required: true,
		apply: func(s *Settings, value string) error {
			n, err := parsePositiveInt(value)
			if err != nil {
				return fmt.Errorf("maxProcesses: %w", err)
			}
			s.MaxProcesses = &n
			return nil
		},
	},
	"maxActions": {
		required: true,
		apply: func(s *Settings, value string) error {
			n, err := parsePositiveInt(value)
			if err != nil {
				return fmt.Errorf("maxActions: %w", err)
			}
			s.MaxActions = &n
			return nil
		},
	},
	"delay": {
		required: true,
		apply: func(s *Settings, value string) error {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("delay: %w", err)
			}
			v := value
			s.Delay = &v
			return nil
		},
	},
}

func parsePositiveInt(value string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

// Validate applies the allow-list of spec.md §4.7 step 3 to a raw
// "settings" map, returning a typed Settings or the first configuration
// error encountered (unknown key or a failing validator both abort,
// matching spec.md §7's disposition table for configuration errors).
func Validate(raw map[string]string) (*Settings, error) {
	settings := &Settings{LogLevel: "NORMAL"}

	for key, value := range raw {
		option, ok := settingOptions[key]
		if !ok {
			return nil, fmt.Errorf("unknown setting %q", key)
		}
		if option.required && value == "" {
			return nil, fmt.Errorf("setting %q requires a value", key)
		}
		if err := option.apply(settings, value); err != nil {
			return nil, fmt.Errorf("invalid setting %q: %w", key, err)
		}
	}

	return settings, nil
}
