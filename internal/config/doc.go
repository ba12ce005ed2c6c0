// Package config provides configuration parsing for routegen projects.
//
// The configuration is stored in routegen.json (or routegen.yaml) at the
// project root. Every field is optional; a project without a config file gets
// the defaults below, anchored at the working directory.
//
// # Configuration File Structure
//
//	{
//	  "routes": "src/routes",
//	  "router": "src/router.ts",
//	  "overrides": "src/routes/route.config.ts",
//	  "extension": ".tsx",
//	  "index": "index.tsx",
//	  "home": "public",
//	  "alias": "@/routes",
//	  "categories": [
//	    {"name": "public", "basePath": "/", "label": "Public routes"},
//	    {"name": "auth", "basePath": "/auth", "label": "Authentication routes"},
//	    {"name": "protected", "basePath": "/app", "label": "Protected routes"}
//	  ],
//	  "ignore": ["**/__tests__/"],
//	  "dev": {
//	    "listen": "localhost:4321",
//	    "debounce": "100ms",
//	    "watchIgnore": ["**/*.stories.tsx"]
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "i18n": {"dir": "public/locales", "default": "fr", "locales": ["en", "fr"]}
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println("Routes:", cfg.RoutesPath())
package config
