package domain

// RootPath is the target of the brand link and of the Chat entry.
const RootPath = "/"

// Fixed texts rendered in the shell header.
const (
	BrandTitle = "GPT Chatbot und Suche in Dokumenten"
	InfoLabel  = "Azure OpenAI + Cognitive Search + SCAI"
)

// NavEntry is a labeled link to a specific route.
type NavEntry struct {
	Label  string
	Target string
}

var navEntries = [...]NavEntry{
	{Label: "Chat", Target: RootPath},
	{Label: "Stelle eine Frage", Target: "/qa"},
}

// NavEntries returns the navigation entries in display order.
// The returned slice is a copy; the table itself is fixed for the process lifetime.
func NavEntries() []NavEntry {
	out := make([]NavEntry, len(navEntries))
	copy(out, navEntries[:])
	return out
}
