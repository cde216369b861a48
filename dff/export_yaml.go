package dff

import (
	"io"

	"gopkg.in/yaml.v3"
)

func (m *Model) ExportYaml(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
