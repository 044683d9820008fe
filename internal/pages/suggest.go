package pages

import (
	"bytes"
	"html/template"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/bft-labs/chatshell/internal/domain"
)

// maxSuggestDistance bounds the edit distance of a "did you mean" entry.
const maxSuggestDistance = 2

// Suggest returns the navigation entries whose target is within
// maxSuggestDistance edits of path, closest first. Comparison ignores case.
func Suggest(path string) []domain.NavEntry {
	type candidate struct {
		entry    domain.NavEntry
		distance int
	}
	needle := strings.ToLower(path)
	var found []candidate
	for _, e := range domain.NavEntries() {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(e.Target))
		if d <= maxSuggestDistance {
			found = append(found, candidate{entry: e, distance: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].distance < found[j].distance })

	out := make([]domain.NavEntry, len(found))
	for i, c := range found {
		out[i] = c.entry
	}
	return out
}

var suggestionTmpl = template.Must(template.New("suggestions").Parse(
	`<nav class="suggestions"><p>Meinten Sie:</p><ul>{{range .}}<li><a href="{{.Target}}">{{.Label}}</a></li>{{end}}</ul></nav>`))

func suggestionList(entries []domain.NavEntry) template.HTML {
	if len(entries) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := suggestionTmpl.Execute(&buf, entries); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

const fallbackNotFound template.HTML = `<h1>Seite nicht gefunden</h1>`
