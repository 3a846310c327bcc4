/*
Copyright 2026 The Strata Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package workspace

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// Progress is the (mutex, counter) pair a discovery caller may poll from a
// worker thread while Discover runs on another goroutine.
type Progress struct {
	mu    sync.Mutex
	count int
}

// Count returns the number of tag files discovered so far.
func (p *Progress) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *Progress) add(n int) {
	p.mu.Lock()
	p.count += n
	p.mu.Unlock()
}

// TagFile is one discovered entry in a virtual tag folder: its full host
// path, its tag class (from its extension), its logical tag path, and the
// priority of the root it was found under.
type TagFile struct {
	FullPath  string
	TagClass  string
	TagPath   string
	RootIndex int
}

// ClassOfExtension maps a file extension (without the leading dot) to a
// tag class. Callers supply the schema registry's extension table; an
// empty return means "not a recognized tag file."
type ClassOfExtension func(ext string) string

// Discover walks each tags-tree root, in priority order, collecting every
// file whose extension resolves to a known tag class. It tolerates entries
// that fail to open: each failure is recorded via multierr and the walk
// continues.
func Discover(roots []string, classOf ClassOfExtension, progress *Progress) ([]TagFile, error) {
	if progress == nil {
		progress = &Progress{}
	}

	var all []TagFile
	var errs error

	for i, root := range roots {
		found := 0
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil // keep walking; one bad entry doesn't abort the scan
			}
			if d.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			if ext == "" {
				return nil
			}
			class := classOf(ext[1:])
			if class == "" {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				errs = multierr.Append(errs, err)
				return nil
			}
			tagPath, _, _ := SplitTagClassExtension(ToLogicalPath(rel))
			all = append(all, TagFile{
				FullPath:  path,
				TagClass:  class,
				TagPath:   tagPath,
				RootIndex: i,
			})
			found++
			return nil
		})
		if walkErr != nil {
			errs = multierr.Append(errs, walkErr)
		}
		if found > 0 {
			progress.add(found)
		}
	}

	return all, errs
}
