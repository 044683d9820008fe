// Package shell renders the persistent page frame of the chat client.
//
// The frame has a fixed order: a header with the brand link, the navigation
// list, the info label, and the content region. Which navigation entry is
// marked active is a pure function of the current path (see [IsActive]).
//
// The content region is the single extension point of the shell. A router
// picks one [Outlet] per request and hands it to [Layout.Render]; the shell
// never decides what goes into the region.
package shell
