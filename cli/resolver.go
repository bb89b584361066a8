package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML config file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The file holds one flat mapping of flag names to values. Flag names with
// hyphens (e.g., "log-level") may use underscores in the config file
// (e.g., "log_level"); both spellings are recognized.
//
// Example config file:
//
//	log_level: debug
//	log_format: text
//	keyword: lambda
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty config file
			return config{}, nil
		}

		return nil, err
	}

	cfg := make(config, len(raw))
	for key, value := range raw {
		// kong expects numbers as strings for parsing
		switch num := value.(type) {
		case int64:
			cfg[key] = strconv.FormatInt(num, 10)
		case uint64:
			cfg[key] = strconv.FormatUint(num, 10)
		case float64:
			cfg[key] = strconv.FormatFloat(num, 'f', -1, 64)
		default:
			cfg[key] = value
		}
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// kong flags use hyphens (e.g., "log-level") but YAML keys commonly
	// use underscores. Try the underscore variant too.
	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let kong use defaults
	return nil, nil
}
