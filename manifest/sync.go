package manifest

import (
	"os"

	"github.com/grovetools/catalogdocs/errors"
)

// SyncFile replaces the page list of the groups labelled group in the manifest
// at path. The file is only rewritten when at least one group matched;
// otherwise a GROUP_NOT_FOUND error is returned.
func SyncFile(path, group string, pages []string) (int, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return 0, err
	}

	n, err := doc.ReplacePages(group, pages)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to update navigation manifest").
			WithDetail("path", path)
	}
	if n == 0 {
		return 0, errors.GroupNotFound(group).WithDetail("path", path)
	}

	out, err := doc.Bytes()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternal, "failed to render navigation manifest")
	}

	info, statErr := os.Stat(path)
	mode := os.FileMode(0644)
	if statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return 0, errors.WriteFailed(path, err)
	}
	return n, nil
}

// LoadFile parses the manifest at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeManifestRead, "failed to read navigation manifest").
			WithDetail("path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to parse navigation manifest").
			WithDetail("path", path)
	}
	return doc, nil
}
