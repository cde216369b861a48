package vfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OpenSource opens path as dff source: directory, iso image or single dff file.
// Returns directory to read files from and dff file paths inside it.
func OpenSource(path string) (Directory, []string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Can't open source")
	}

	var d Directory
	switch {
	case st.IsDir():
		d = NewDirectoryDriver(path)
	case strings.EqualFold(filepath.Ext(path), ISO_EXTENSION):
		iso, err := NewIsoDriver(NewDirectoryDriverFile(path))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't open iso '%s'", path)
		}
		d = iso
	default:
		if !IsDff(path) {
			return nil, nil, errors.Errorf("'%s' is not dff, iso or directory", path)
		}
		return NewDirectoryDriver(filepath.Dir(path)), []string{filepath.Base(path)}, nil
	}

	files, err := ListDff(d)
	if err != nil {
		CloseSource(d)
		return nil, nil, errors.Wrapf(err, "Can't list '%s'", path)
	}
	return d, files, nil
}

// CloseSource releases resources held by source returned from OpenSource.
// Directory sources hold nothing, iso source keeps image file open.
func CloseSource(d Directory) error {
	if c, ok := d.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
