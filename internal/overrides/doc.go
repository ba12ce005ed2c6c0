// Package overrides reads and maintains the route override table.
//
// The table is a TypeScript source file (route.config.ts by default) that
// users edit by hand. It maps "<category>/<baseName>" keys to an optional
// custom path:
//
//	export const routeConfig: Record<string, { path?: string; override?: boolean }> = {
//	  "auth/login": { path: "/login", override: true },
//	}
//
// The file is never evaluated. Entries are recognized line by line, so an
// entry must fit on a single line to be read back. Every other line is
// preserved byte-for-byte when the table is reconciled.
package overrides
