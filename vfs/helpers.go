package vfs

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const DFF_EXTENSION = ".dff"

func IsDff(name string) bool {
	return strings.EqualFold(path.Ext(name), DFF_EXTENSION)
}

func OpenFileAndGetReader(f File) (*io.SectionReader, error) {
	if err := f.Open(); err != nil {
		return nil, fmt.Errorf("Cannot open file '%s': %v", f.Name(), err)
	} else {
		if r, err := f.Reader(); err != nil {
			defer f.Close()
			return nil, fmt.Errorf("Cannot get file '%s' reader: %v", f.Name(), err)
		} else {
			return r, err
		}
	}
}

// ReadAll returns whole file content, decoders work on in-memory buffer
func ReadAll(f File) ([]byte, error) {
	r, err := OpenFileAndGetReader(f)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, r.Size())
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrapf(err, "Cannot read file '%s'", f.Name())
	}
	return data, nil
}

func DirectoryGetFile(d Directory, name string) (File, error) {
	if f, err := d.GetElement(name); err != nil {
		return nil, fmt.Errorf("Cannot open file '%s': %v", name, err)
	} else if f.IsDirectory() {
		return nil, fmt.Errorf("File '%s' is directory, not a file!", name)
	} else {
		return f.(File), nil
	}
}

// GetFileByPath walks slash separated path from d
func GetFileByPath(d Directory, p string) (File, error) {
	parts := strings.Split(strings.Trim(path.Clean("/"+p), "/"), "/")
	for _, dirName := range parts[:len(parts)-1] {
		e, err := d.GetElement(dirName)
		if err != nil {
			return nil, errors.Wrapf(err, "Cannot open directory '%s'", dirName)
		}
		sub, ok := e.(Directory)
		if !ok {
			return nil, errors.Wrapf(os.ErrNotExist, "'%s' is not a directory", dirName)
		}
		d = sub
	}
	return DirectoryGetFile(d, parts[len(parts)-1])
}

// ListDff returns sorted slash separated paths of dff files under d
func ListDff(d Directory) ([]string, error) {
	result := make([]string, 0, 32)
	if err := listDff(d, "", &result); err != nil {
		return nil, err
	}
	sort.Strings(result)
	return result, nil
}

func listDff(d Directory, prefix string, result *[]string) error {
	names, err := d.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		if IsDff(name) {
			*result = append(*result, prefix+name)
			continue
		}
		e, err := d.GetElement(name)
		if err != nil {
			return err
		}
		if sub, ok := e.(Directory); ok && e.IsDirectory() {
			if err := listDff(sub, prefix+name+"/", result); err != nil {
				return err
			}
		}
	}
	return nil
}
