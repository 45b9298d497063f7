// Package registry provides the catalog of installable desktop apps.
//
// The registry is filled once at startup, from the built-in catalog and
// optionally from catalog files found below a directory, and is read-only
// afterwards. Lookup order is registration order, which is also the order
// of desktop icons, start menu entries and app search results.
//
// Components:
//   - Registry: Ordered lookup table of AppMetadata
//   - Builtin: The stock portfolio apps
//   - Seeder: Loads extra entries from YAML or TOML catalog files
//
// Catalog File Format (YAML):
//
//	apps:
//	  - id: guestbook
//	    name: Guestbook
//	    icon: "📖"
//	    component: GuestbookApp
//	    category: personal
//	    defaultSize: {width: 500, height: 600}
//	    searchKeywords: [guestbook, sign]
//	    description: Leave a note
//
// TOML files use an [[apps]] array of tables with the same keys.
//
// Example Usage:
//
//	reg := registry.NewDefault()
//	seeder := registry.NewSeeder(reg, cfg.Catalog.Dir, log)
//	loaded, failed, err := seeder.Seed(ctx)
//	app, ok := reg.Get("projects")
package registry
