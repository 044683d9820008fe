package shell

// LinkState is the visual state of a navigation link.
type LinkState int

const (
	Inactive LinkState = iota
	Active
)

// CSS classes for the two link states.
const (
	classLink       = "nav-link"
	classLinkActive = "nav-link nav-link--active"
)

// IsActive reports whether a link to target represents the current path.
// Matching is exact: "/qa/" and "/qa/x" do not activate "/qa".
func IsActive(current, target string) bool {
	return current == target
}

// StateFor returns the state of a link to target for the current path.
func StateFor(current, target string) LinkState {
	if IsActive(current, target) {
		return Active
	}
	return Inactive
}

// Active reports whether s is the active state.
func (s LinkState) Active() bool { return s == Active }

// Class returns the CSS class list for s.
func (s LinkState) Class() string {
	if s == Active {
		return classLinkActive
	}
	return classLink
}

func (s LinkState) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}
