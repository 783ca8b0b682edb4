// Package config loads mock response definitions from YAML or JSON files.
//
// A mock file holds a single mock, a list of mocks, or a document with a
// top-level "mocks" list:
//
//	mocks:
//	  - method: GET
//	    url: http://api.example.com/users/{id}
//	    response:
//	      status: 200
//	      body: '{"name":"ada"}'
//	  - method: POST
//	    url: /orders
//	    match:
//	      bodyJsonPath:
//	        $.qty: 2
//	    response:
//	      status: 201
//
// Files may reference environment variables as ${VAR} or ${VAR:-default}.
// Every file is checked against an embedded JSON Schema before decoding,
// then each mock is validated. Paths may be doublestar globs
// ("mocks/**/*.yaml"); matches are loaded in sorted order so registration
// order is deterministic.
package config
