package covermark

// Mark is the handle returned by registration. It carries no state beyond
// its name; identity is the name itself, and two registrations of the same
// name yield the same handle.
type Mark struct {
	name   string
	engine *Engine
}

// Name returns the stable string identifier of the instrumentation point.
func (m *Mark) Name() string {
	return m.name
}

// Hit records one execution of the mark, equivalent to Engine.Hit with the
// mark's name. On a handle from a disabled build it does nothing.
func (m *Mark) Hit() {
	if m.engine == nil {
		return
	}

	m.engine.Hit(m.name)
}

func (m *Mark) String() string {
	return m.name
}
