package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArnaudCalmettes/graybench/imp"
)

// DefaultPattern matches the files picked up in the input directory. It is
// case-sensitive.
const DefaultPattern = "*.JPG"

// Discover lists the regular files of dir, or symlinks to them, whose name
// matches pattern, sorted by name. Subdirectories are not searched.
func Discover(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}
		// Stat follows symlinks; dangling ones are skipped.
		path := filepath.Join(dir, e.Name())
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	return files, nil
}

// Load decodes an image file into an RGB image.
func Load(filename string) (*imp.RGB, error) {
	img, err := imp.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("couldn't load %s: %w", filename, err)
	}
	return imp.FromImage(img), nil
}

// Stem returns the file name without its directory and extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputName returns the name of the grayscale file written for filename.
func OutputName(filename, ext string) string {
	return Stem(filename) + "_bw" + ext
}
