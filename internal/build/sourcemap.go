package build

import (
	"encoding/json"
	"path"
	"strings"
)

// sourceRoot places map sources under a virtual origin. Sources are the
// logical asset names and are only available through sourcesContent.
const sourceRoot = "chatshell:///"

// sourceMap is a Source Map revision 3 document.
type sourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// identityMappings maps every generated line to the same line of a single
// source, column 0 to column 0.
//
// The first segment is [0,0,0,0] ("AAAA"); each later line advances the
// source line by one ("AACA").
func identityMappings(src string) string {
	lines := strings.Count(src, "\n") + 1
	var sb strings.Builder
	sb.Grow(lines * 5)
	for i := 0; i < lines; i++ {
		if i == 0 {
			sb.WriteString("AAAA")
			continue
		}
		sb.WriteString(";AACA")
	}
	return sb.String()
}

func newSourceMap(file, source, content string) ([]byte, error) {
	return json.Marshal(sourceMap{
		Version:        3,
		File:           file,
		SourceRoot:     sourceRoot,
		Sources:        []string{source},
		SourcesContent: []string{content},
		Names:          []string{},
		Mappings:       identityMappings(content),
	})
}

// mappingComment returns the trailing comment that links a file to its map,
// or "" for file types without source maps.
func mappingComment(name string) string {
	mapName := path.Base(name) + ".map"
	switch path.Ext(name) {
	case ".js":
		return "\n//# sourceMappingURL=" + mapName + "\n"
	case ".css":
		return "\n/*# sourceMappingURL=" + mapName + " */\n"
	default:
		return ""
	}
}
