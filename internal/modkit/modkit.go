// Package modkit wires service modules from shared deps and build options
package modkit

import "riskscan/internal/modkit/module"

// Module is the surface every service module exposes to the composition root
type Module = module.Module
