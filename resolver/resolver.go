// Package resolver implements the include-resolver callback: a function
// from a template's source name to its source text, or not-found. The
// billy.Filesystem-backed variant follows pgavlin/yomlette's
// internal/spec fixture loader, which uses the same abstraction (osfs
// for a real tree, memfs+chroot for an isolated in-memory one) to turn
// "a name" into "some content".
package resolver

import (
	"io"
	"path"

	"github.com/go-git/go-billy/v5"
)

// Func resolves a template name to its source text. It returns ok=false
// when the name cannot be found, which the parser turns into the
// distinguished perror.NotFound error.
type Func func(name string) (source string, ok bool)

// Map returns a Func backed by a fixed in-memory table, for tests and
// RenderPure-only embedders that have no filesystem at all.
func Map(sources map[string]string) Func {
	return func(name string) (string, bool) {
		src, ok := sources[name]
		return src, ok
	}
}

// FS returns a Func that resolves name relative to baseDir inside fs.
// Combine with osfs.New(root) for a real directory tree, or memfs.New()
// (optionally wrapped in helper/chroot.New) for an isolated in-memory
// tree.
func FS(fs billy.Filesystem, baseDir string) Func {
	return func(name string) (string, bool) {
		full := path.Join(baseDir, name)
		f, err := fs.Open(full)
		if err != nil {
			return "", false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", false
		}
		return string(data), true
	}
}
