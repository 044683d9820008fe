package pages

// NotFoundPage is the page rendered for paths no route matches.
const NotFoundPage = "notfound"

// Route binds a router path to a page name.
type Route struct {
	Path string
	Page string
}

// DefaultRoutes returns the page routes of the client.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Page: "chat"},
		{Path: "/qa", Page: "qa"},
	}
}
