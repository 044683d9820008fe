// Package domain contains the static entities of chatshell.
//
// This package has no dependencies on infrastructure concerns (HTTP, file
// system, logging). It holds the navigation entries shown by the shell, the
// proxy rules used by the development server, and the sentinel errors
// returned across the module.
//
// # Entities
//
//   - [NavEntry]: a labeled link to a fixed route in the shell's navigation
//   - [ProxyRule]: a path prefix forwarded to an upstream origin in development
//
// # Design Principles
//
// Entities are constructed once and never mutated. Accessors hand out copies
// so callers cannot change the tables at runtime.
package domain
