package shell

// Outlet fills the content region for a path. Exactly one outlet is used per render.
type Outlet interface {
	Fill(path string) (Content, error)
}

// OutletFunc adapts a function to Outlet.
type OutletFunc func(path string) (Content, error)

// Fill calls f(path).
func (f OutletFunc) Fill(path string) (Content, error) {
	return f(path)
}
