// Package module holds the module contract and port lookup helpers.
// It has no dependencies so service packages can import it without cycles
package module

// Module is a named unit that publishes a port bundle
type Module interface {
	Ports() any
	Name() string
}
