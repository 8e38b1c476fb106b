/*
Package traverse implements lazy tree traversals over fs.FS directory trees.
*/
package traverse

import (
	"io/fs"
	"path"
)

// Depth performs a depth-first traversal over the directory tree rooted at root.
// Entries are visited lazily: a directory is only read once it is popped from the
// stack, and siblings are visited in lexical order. If the visitor function returns
// false, traversal is stopped and no further directories are read.
//
// Directories that cannot be read are skipped; the error is passed to onError if it
// is non-nil.
func Depth(fsys fs.FS, root string, visitor func(name string, entry fs.DirEntry) bool, onError func(name string, err error)) {
	type item struct {
		name  string
		entry fs.DirEntry
	}

	stack := []item{{name: root}}

	for l := len(stack); l > 0; l = len(stack) {
		it := stack[l-1]
		stack = stack[:l-1]

		if it.entry != nil {
			if !visitor(it.name, it.entry) {
				break
			}

			if !it.entry.IsDir() {
				continue
			}
		}

		entries, err := fs.ReadDir(fsys, it.name)
		if err != nil {
			if onError != nil {
				onError(it.name, err)
			}
			continue
		}

		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, item{name: path.Join(it.name, entries[i].Name()), entry: entries[i]})
		}
	}
}
