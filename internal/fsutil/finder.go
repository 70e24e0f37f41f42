// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dataset document formats, named by their file extension.
const (
	FormatHCL  = "hcl"
	FormatJSON = "json"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// CollectFiles expands paths into a flat, deduplicated list of files with
// the given extension. Directories are searched recursively; a file path is
// taken as is when its extension matches. A path that does not exist is an
// error.
func CollectFiles(paths []string, extension string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if strings.HasSuffix(path, extension) {
				add(path)
			}
			continue
		}
		found, err := FindFilesByExtension(path, extension)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}

// DetectFormat returns the format of the dataset documents at path: the
// extension of a file, or the single document extension found in a directory.
func DetectFormat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return formatOf(path)
	}

	found := make(map[string]struct{})
	for _, format := range []string{FormatHCL, FormatJSON} {
		files, err := FindFilesByExtension(path, "."+format)
		if err != nil {
			return "", fmt.Errorf("error walking %s: %w", path, err)
		}
		if len(files) > 0 {
			found[format] = struct{}{}
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no .hcl or .json dataset files found in %s", path)
	case 1:
		for format := range found {
			return format, nil
		}
	}
	formats := make([]string, 0, len(found))
	for format := range found {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return "", fmt.Errorf("directory %s mixes dataset formats (%s)", path, strings.Join(formats, ", "))
}

func formatOf(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "." + FormatHCL:
		return FormatHCL, nil
	case "." + FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported dataset file extension %q for %s", ext, path)
	}
}
