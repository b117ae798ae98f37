package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/taoziyu97/sra-tools/pkg/merge"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// textRenderer prints a human summary, styled or plain.
type textRenderer struct {
	output io.Writer
	styled bool
}

func newTextRenderer(output io.Writer, styled bool) *textRenderer {
	return &textRenderer{output: output, styled: styled}
}

func (r *textRenderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *textRenderer) row(b *strings.Builder, label, value string) {
	if r.styled {
		label = LabelStyle.Render(label)
	} else {
		label = fmt.Sprintf("%-14s", label)
	}
	fmt.Fprintf(b, "  %s%s\n", label, value)
}

func (r *textRenderer) RenderResult(res *merge.Result) error {
	var b strings.Builder

	if res.Strategy == types.StrategyNone {
		b.WriteString(r.style(WarningStyle, "No input files, nothing to merge") + "\n")
		_, err := io.WriteString(r.output, b.String())
		return err
	}

	verb := "Merged"
	if res.DryRun {
		verb = "Would merge"
	}
	title := fmt.Sprintf("%s %d %s into %s", verb, res.Files, plural(res.Files, "file"), r.style(PathStyle, res.OutputPath))
	b.WriteString(r.style(TitleStyle, title) + "\n")

	r.row(&b, "strategy", res.Strategy.String())
	switch {
	case res.Renamed && res.DryRun:
		r.row(&b, "rename", fmt.Sprintf("first input would be moved into place (%s)", humanize.IBytes(uint64(res.StartOffset))))
	case res.Renamed:
		r.row(&b, "rename", fmt.Sprintf("first input moved into place (%s)", humanize.IBytes(uint64(res.StartOffset))))
	case res.AppendUsed:
		r.row(&b, "append at", humanize.IBytes(uint64(res.StartOffset)))
	}
	r.row(&b, "copied", fmt.Sprintf("%s from %d %s", humanize.IBytes(uint64(res.BytesCopied)), res.Copied, plural(res.Copied, "file")))
	if res.OutputSize > 0 || !res.DryRun {
		r.row(&b, "output size", humanize.IBytes(uint64(res.OutputSize)))
	}
	if res.Checksum != "" {
		r.row(&b, "blake3", res.Checksum)
	}
	if !res.DryRun {
		r.row(&b, "took", res.Duration.Round(time.Millisecond).String())
	}

	for _, w := range res.Warnings {
		b.WriteString(r.style(WarningStyle, "warning: "+w) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.style(ErrorStyle, "Error:")+" "+err.Error())
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
