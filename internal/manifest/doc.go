// Package manifest locates, parses and caches bundler manifest files. A
// manifest maps logical asset names to the content-hashed filenames (or
// absolute URLs) produced by a frontend build.
//
// # Manifest Format
//
// Manifests are JSON by default, written by webpack-manifest-plugin and
// similar tools:
//
//	{
//	  "main.js": "main.8f7705a.js",
//	  "vendors~main.js": "vendors~main.3ad03.js"
//	}
//
// YAML manifests (.yaml, .yml) are accepted as well. Entry order is preserved
// exactly as written in the file. Documents whose root is a list are kept as
// KindList and left to strategies that understand them.
//
// # Usage
//
//	loader := manifest.NewLoader(manifest.Options{
//	    StaticDirs: []string{"./assets"},
//	    Cache:      true,
//	})
//	m, err := loader.Get()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// The package defines sentinel errors shared by the resolvers:
//   - ErrManifestNotFound: no manifest file in any candidate directory
//   - ErrManifestParse: file found but not a valid manifest document
//   - ErrUnsupportedExt: unsupported file extension (also a parse error)
//   - ErrConfiguration: invalid configuration of a loader or tag
package manifest
