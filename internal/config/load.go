package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes the TOML file at path on top of base. Keys absent from the
// file keep their base values; unknown keys are an error. The result is not
// validated.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	cfg.Tiers = slices.Clone(base.Tiers)
	cfg.Levels = slices.Clone(base.Levels)

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
