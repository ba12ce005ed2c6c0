// Package templates holds the text templates of every file routegen writes.
//
// Generated artifacts:
//
//   - the override table (route.config.ts) created on first run
//   - the marker-delimited region of each category index file
//   - the aggregate router file
//   - the placeholder body of a freshly created, empty route component
//
// The starter scaffold used by "routegen init" lives here as well.
//
// # Usage
//
//	region, err := templates.IndexRegion(templates.IndexData{
//	    Alias:    "@/routes",
//	    Category: "auth",
//	    BasePath: "/auth",
//	    Imports:  []templates.Import{{Name: "Login", Spec: "./login"}},
//	    Routes: []templates.RouteDef{{
//	        Var: "loginRoute", Parent: "authRoute", Path: "login", Component: "Login",
//	    }},
//	})
//
// # Template Variables
//
// Starter scaffold files support variable substitution:
//
//	{{.Routes}}     - Routes root, relative to the project
//	{{.Home}}       - Name of the home category
package templates
