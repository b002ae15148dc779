// Package slug turns course titles into URL-safe identifiers.
//
//	slug.Make("Go: Ünit Testing & Mocks")                         // "go-unit-testing-mocks"
//	slug.Make("Rock & Roll", slug.Replace(map[string]string{"&": "and"})) // "rock-and-roll"
//	slug.Make("Intro", slug.WithSuffix(6))                        // "intro-x7g3k2"
//
// Diacritics are removed through Unicode decomposition (golang.org/x/text), so
// the output only ever contains a-z, 0-9 and the separator.
package slug
