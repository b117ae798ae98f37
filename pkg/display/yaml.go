package display

import (
	"io"

	"github.com/taoziyu97/sra-tools/pkg/merge"
	"gopkg.in/yaml.v3"
)

// yamlRenderer writes each value as its own YAML document.
type yamlRenderer struct {
	output io.Writer
}

func newYAMLRenderer(output io.Writer) *yamlRenderer {
	return &yamlRenderer{output: output}
}

func (r *yamlRenderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *yamlRenderer) RenderResult(res *merge.Result) error {
	return r.encode(NewSummary(res))
}

func (r *yamlRenderer) RenderError(err error) error {
	return r.encode(newErrorView(err))
}

func (r *yamlRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
