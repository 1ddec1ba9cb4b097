package modkit

// Option adjusts how a module is built
type Option func(*buildCfg)

type buildCfg struct {
	name  string
	ports any
}

// WithName overrides the module name used in logs and panics
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPorts hands a module the ports it consumes, e.g. a filing source.
// The receiving module owns the concrete type and asserts it
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}
