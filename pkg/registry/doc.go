// Package registry holds the ordered collection of registered mock entities
// and decides which of them services an incoming request.
//
// A Registry is an insertion-ordered list. Find scans it from the front:
//
//   - no entity matches: nothing is returned, together with the failure
//     reason of every entity, in registration order;
//   - exactly one entity matches: it is returned and stays registered, so it
//     keeps serving identical requests;
//   - two or more entities match: the earliest-registered one is removed from
//     the registry and returned. Scanning stops at the second match.
//
// The last rule lets a test register several mocks for the same endpoint and
// have them served one after the other. The final survivor becomes the sole
// match and is then reused indefinitely.
//
// Registries are not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
package registry
