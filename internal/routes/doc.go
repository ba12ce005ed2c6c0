// Package routes turns a tree of route component files into generated
// TanStack Router source.
//
// The routes root holds one directory per category. Every component file
// below a category directory (except the category's own index file) becomes
// a child route of that category:
//
//	src/routes/
//	├── route.config.ts      → override table (see package overrides)
//	├── public/
//	│   ├── index.tsx        → generated region + user code
//	│   ├── home.tsx         → /
//	│   └── docs.tsx         → /docs
//	└── auth/
//	    ├── index.tsx
//	    └── login.tsx        → /auth/login
//
// A rebuild reconciles the override table with the files on disk,
// regenerates the marker-delimited region of every category index and
// rewrites the aggregate router file:
//
//	rb := routes.NewRebuilder(cfg, logger)
//	report, err := rb.Rebuild(ctx)
//
// # Path derivation
//
// The URL segment of a file is its path below the category directory,
// lower-cased and without extension. An override entry with override: true
// replaces it. A replacement starting with "/" makes the route absolute: it
// is attached to the root route instead of its category, except in the home
// category whose routes are always rooted.
package routes
