package input

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions accepted by the file quote endpoint.
var supported = map[string]struct{}{
	".doc": {}, ".docx": {}, ".ppt": {}, ".pptx": {}, ".xls": {}, ".xlsx": {},
	".odt": {}, ".ods": {}, ".odp": {}, ".rtf": {}, ".pdf": {}, ".txt": {},
	".srt": {}, ".html": {}, ".htm": {}, ".xml": {}, ".json": {}, ".yaml": {},
	".yml": {}, ".po": {}, ".strings": {}, ".resx": {}, ".csv": {}, ".md": {},
	".xliff": {}, ".xlf": {}, ".idml": {}, ".ini": {},
}

type SourceFile struct {
	Path string
}

// Supported reports whether the file extension can be quoted.
func Supported(path string) bool {
	_, ok := supported[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Discover expands inputs into source files. Directories are walked
// recursively and hidden entries or unsupported files inside them are
// skipped; a named file with an unsupported extension is an error.
func Discover(inputs []string) ([]SourceFile, error) {
	var out []SourceFile
	seen := map[string]struct{}{}
	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		out = append(out, SourceFile{Path: path})
	}
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			var found []string
			err := filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				hidden := path != in && strings.HasPrefix(d.Name(), ".")
				if d.IsDir() {
					if hidden {
						return filepath.SkipDir
					}
					return nil
				}
				if hidden || !d.Type().IsRegular() || !Supported(path) {
					return nil
				}
				found = append(found, path)
				return nil
			})
			if err != nil {
				return nil, err
			}
			sort.Strings(found)
			for _, p := range found {
				add(p)
			}
			continue
		}
		if !Supported(in) {
			return nil, fmt.Errorf("unsupported file type: %s", in)
		}
		add(in)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no source files found")
	}
	return out, nil
}
