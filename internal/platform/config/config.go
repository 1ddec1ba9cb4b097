// Package config reads engine and tool settings from environment variables.
// Values that fail to parse are logged and replaced by the caller's default
package config

import (
	"os"
	"strconv"
	"strings"

	"riskscan/internal/platform/logger"
)

// Conf is an environment view under a key prefix such as "CORE_ANALYZE_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix, e.g. cfg.Prefix("CORE_RISK_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string {
	return strings.TrimSpace(os.Getenv(c.Key(key)))
}

// may parses key with parse, falling back to def when unset or invalid
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString returns the trimmed value or def when unset or blank
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the integer value of key or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayFloat64 returns the float value of key or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, "float64", func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the strconv.ParseBool value of key or def
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayPath returns a filesystem path or def. A path that cannot be stat'ed is logged
// but still returned; the loader that opens it reports the typed error
func (c Conf) MayPath(key, def string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	if _, err := os.Stat(v); err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("path", v).Err(err).Msg("configured path not accessible")
	}
	return v
}
