// Package cli provides the mockreg command-line interface.
//
//   - match: load mock files into a registry and replay a request against it
//   - validate: check mock files without matching anything
//   - list: show mocks in registration order
//
// Mock files come from repeated -f flags or, when none are given, from the
// comma-separated MOCKREG_FILES environment variable.
package cli
