// Package proxy forwards backend paths of the dev server to their upstream.
//
// Matching is a plain string prefix test on the request path, so "/chat"
// also matches "/chatty". Requests are forwarded unchanged, including the
// inbound Host header.
package proxy
