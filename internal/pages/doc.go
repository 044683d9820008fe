// Package pages provides the content outlets the router places into the
// shell's content region.
//
// Pages are markdown documents. The first level-1 heading becomes the page
// title; the rendered HTML is sanitised before it reaches the layout.
package pages
