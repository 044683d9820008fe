package devserver

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// assetPrefix is the URL path the asset filesystem is served under.
const assetPrefix = "/assets/"

// assetURLs lists the stylesheet and script URLs of assets, ordered by
// name, so every page links exactly the files that are served.
func assetURLs(assets fs.FS) (styles, scripts []string, err error) {
	err = fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(name) {
		case ".css":
			styles = append(styles, assetPrefix+name)
		case ".js":
			scripts = append(scripts, assetPrefix+name)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list assets: %w", err)
	}
	sort.Strings(styles)
	sort.Strings(scripts)
	return styles, scripts, nil
}
