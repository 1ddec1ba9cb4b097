package modkit

// Built is the result of applying options
type Built struct {
	Name  string
	Ports any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{Name: c.name, Ports: c.ports}
}
