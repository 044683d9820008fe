package shell

import (
	"html/template"

	"github.com/bft-labs/chatshell/internal/domain"
)

// Link is a labeled href.
type Link struct {
	Label  string
	Target string
}

// NavLink is a navigation entry with its computed state.
type NavLink struct {
	Link
	State LinkState
}

// Content fills the content region.
type Content struct {
	Title  string
	Body   template.HTML
	Status int
}

// Frame is the render tree of one page.
type Frame struct {
	Lang        string
	Brand       Link
	Nav         []NavLink
	Info        string
	Content     Content
	Stylesheets []string
	Scripts     []string
}

// Compose builds the frame for the current path with an empty content region.
func Compose(current string) Frame {
	entries := domain.NavEntries()
	nav := make([]NavLink, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, NavLink{
			Link:  Link{Label: e.Label, Target: e.Target},
			State: StateFor(current, e.Target),
		})
	}
	return Frame{
		Lang:  "de",
		Brand: Link{Label: domain.BrandTitle, Target: domain.RootPath},
		Nav:   nav,
		Info:  domain.InfoLabel,
	}
}

// ActiveEntry returns the active navigation link, if any.
func (f Frame) ActiveEntry() (NavLink, bool) {
	for _, l := range f.Nav {
		if l.State.Active() {
			return l, true
		}
	}
	return NavLink{}, false
}

// DocumentTitle is the text of the <title> element.
func (f Frame) DocumentTitle() string {
	if f.Content.Title == "" || f.Content.Title == f.Brand.Label {
		return f.Brand.Label
	}
	return f.Content.Title + " | " + f.Brand.Label
}
