// Package build renders the shell into a static output directory.
//
// Assets are written with content-hashed names, every page route becomes an
// index.html, and a manifest maps logical asset names to the hashed files.
// The dev proxy table plays no part in a build.
package build
