// Package devserver serves the navigation shell during development.
//
// Backend paths are forwarded through the proxy table; every other path is
// answered locally with the shell layout, the page outlets and the static
// assets.
package devserver
