// Package errors provides coded, actionable error messages for routegen.
//
// Every error carries a short code (e.g. "R110") that maps to a message and a
// longer explanation. Errors can point at a line of a source file, in which
// case Format prints the surrounding lines:
//
//	err := errors.New("R103").
//	    WithLocation("src/routes/route.config.ts", 12, 0).
//	    WithSuggestion(`Write the entry on one line`)
//
//	fmt.Print(err.Format())
//	// Output:
//	// WARNING R103: Override entry not recognized
//	//
//	//   src/routes/route.config.ts:12
//	//
//	//     10 │   "auth/hello": { path: "hello", override: false },
//	//     11 │   "auth/login": {
//	//   → 12 │     path: "mui", override: true },
//	//     ...
//
// The codes are grouped by range:
//   - R100-R109: project configuration and the override table
//   - R110-R119: scanning and generated output
//   - R120-R129: watching
//   - R130-R139: CLI
//   - R140-R149: translation catalogs
package errors
