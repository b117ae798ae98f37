package display

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/taoziyu97/sra-tools/pkg/merge"
)

// xmlRenderer writes results as small XML documents.
type xmlRenderer struct {
	output io.Writer
}

func newXMLRenderer(output io.Writer) *xmlRenderer {
	return &xmlRenderer{output: output}
}

func (r *xmlRenderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

func (r *xmlRenderer) RenderResult(res *merge.Result) error {
	s := NewSummary(res)
	doc := newDocument()

	root := doc.CreateElement("merge")
	root.CreateAttr("strategy", s.Strategy)
	root.CreateAttr("dryRun", strconv.FormatBool(s.DryRun))
	root.CreateAttr("duration", s.Duration)

	out := root.CreateElement("output")
	out.CreateAttr("path", s.Output)
	out.CreateAttr("size", strconv.FormatInt(s.OutputSize, 10))
	out.CreateAttr("startOffset", strconv.FormatInt(s.StartOffset, 10))
	out.CreateAttr("renamed", strconv.FormatBool(s.Renamed))
	out.CreateAttr("appendUsed", strconv.FormatBool(s.AppendUsed))
	if s.Checksum != "" {
		sum := out.CreateElement("checksum")
		sum.CreateAttr("algorithm", "blake3")
		sum.SetText(s.Checksum)
	}

	copied := root.CreateElement("copy")
	copied.CreateAttr("files", strconv.Itoa(s.Files))
	copied.CreateAttr("copied", strconv.Itoa(s.Copied))
	copied.CreateAttr("bytes", strconv.FormatInt(s.BytesCopied, 10))

	if len(s.Warnings) > 0 {
		warnings := root.CreateElement("warnings")
		for _, w := range s.Warnings {
			warnings.CreateElement("warning").SetText(w)
		}
	}

	return r.write(doc)
}

func (r *xmlRenderer) RenderError(err error) error {
	v := newErrorView(err)
	doc := newDocument()

	root := doc.CreateElement("error")
	root.CreateAttr("code", v.Code)
	root.CreateElement("message").SetText(v.Error)

	if len(v.Details) > 0 {
		keys := make([]string, 0, len(v.Details))
		for k := range v.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details := root.CreateElement("details")
		for _, k := range keys {
			d := details.CreateElement("detail")
			d.CreateAttr("key", k)
			d.SetText(fmt.Sprint(v.Details[k]))
		}
	}

	return r.write(doc)
}

func (r *xmlRenderer) RenderMessage(msg string) error {
	doc := newDocument()
	doc.CreateElement("message").SetText(msg)
	return r.write(doc)
}
