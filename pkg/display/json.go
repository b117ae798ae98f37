package display

import (
	"encoding/json"
	"io"

	"github.com/taoziyu97/sra-tools/pkg/merge"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(output io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderResult(res *merge.Result) error {
	return r.encoder.Encode(NewSummary(res))
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(newErrorView(err))
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
