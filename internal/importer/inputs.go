package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are the file types picked up when walking a directory.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether path has a decodable image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsListFile reports whether path is a CSV or Excel sprite list.
func IsListFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// ExpandInputs resolves command-line arguments into sprite entries, keeping
// argument order. Directories are walked in lexical order for image files;
// CSV and Excel files are read as sprite lists; anything else is taken as a
// single image. Repeated paths are kept once, with a warning.
//
// A missing argument is an error. Row-level problems in sprite lists are
// collected in the result's Errors.
func ExpandInputs(args []string) (ImportResult, error) {
	var result ImportResult
	seen := make(map[string]bool)

	add := func(e Entry) {
		key := filepath.Clean(e.Path)
		if seen[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Duplicate input %s, skipping", e.Path))
			return
		}
		seen[key] = true
		result.Entries = append(result.Entries, e)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return result, fmt.Errorf("input %s: %w", arg, err)
		}

		switch {
		case info.IsDir():
			err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !IsImageFile(path) {
					return nil
				}
				add(Entry{Path: path, Name: path})
				return nil
			})
			if err != nil {
				return result, fmt.Errorf("failed to walk %s: %w", arg, err)
			}

		case IsListFile(arg):
			var list ImportResult
			if ext := strings.ToLower(filepath.Ext(arg)); ext == ".xlsx" || ext == ".xlsm" {
				list = ImportExcel(arg)
			} else {
				list = ImportCSV(arg)
			}
			for _, w := range list.Warnings {
				result.Warnings = append(result.Warnings, arg+": "+w)
			}
			for _, e := range list.Errors {
				result.Errors = append(result.Errors, arg+": "+e)
			}
			for _, e := range list.Entries {
				add(e)
			}

		default:
			add(Entry{Path: arg, Name: arg})
		}
	}

	return result, nil
}
