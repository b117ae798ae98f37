package commands

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taoziyu97/sra-tools/pkg/config"
	"github.com/taoziyu97/sra-tools/pkg/display"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/executor"
	"github.com/taoziyu97/sra-tools/pkg/filesystem"
	"github.com/taoziyu97/sra-tools/pkg/logging"
	"github.com/taoziyu97/sra-tools/pkg/merge"
	"github.com/taoziyu97/sra-tools/pkg/progress"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// mergeFlagKeys maps merge flags onto configuration keys. Only flags set on
// the command line override the configuration.
var mergeFlagKeys = map[string]string{
	"compression": "merge.compression",
	"level":       "merge.level",
	"append":      "merge.append",
	"force":       "merge.force",
	"buffer-size": "merge.buffer_size",
	"workers":     "copy.workers",
	"queue-wait":  "copy.queue_wait",
	"checksum":    "output.checksum",
	"progress":    "output.progress",
	"format":      "output.format",
}

type mergeOptions struct {
	output string
	from   string
	dryRun bool
}

func newMergeCmd(global *globalOptions) *cobra.Command {
	opts := &mergeOptions{}

	cmd := &cobra.Command{
		Use:     "merge -o OUTPUT [flags] FILES...",
		Short:   MsgMergeShort,
		Long:    MsgMergeLong,
		Example: MsgMergeExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringVar(&opts.from, "from", "", MsgFlagFrom)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)

	cmd.Flags().StringP("compression", "z", "none", MsgFlagCompression)
	cmd.Flags().Int("level", 0, MsgFlagLevel)
	cmd.Flags().Bool("append", false, MsgFlagAppend)
	cmd.Flags().Bool("force", false, MsgFlagForce)
	cmd.Flags().String("buffer-size", "1MiB", MsgFlagBufferSize)
	cmd.Flags().Int("workers", 4, MsgFlagWorkers)
	cmd.Flags().String("queue-wait", "500ms", MsgFlagQueueWait)
	cmd.Flags().Bool("checksum", false, MsgFlagChecksum)
	cmd.Flags().String("progress", "auto", MsgFlagProgress)
	cmd.Flags().String("format", "auto", MsgFlagFormat)

	_ = cmd.RegisterFlagCompletionFunc("compression", fixedCompletion("none", "gzip", "bzip2", "zstd", "lz4"))
	_ = cmd.RegisterFlagCompletionFunc("progress", fixedCompletion("auto", "bar", "log", "none"))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion("auto", "term", "text", "json", "yaml", "xml"))

	return cmd
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// changedFlags collects the flags set on the command line as config overrides.
func changedFlags(cmd *cobra.Command, keys map[string]string) map[string]interface{} {
	overrides := make(map[string]interface{})
	for name, key := range keys {
		if cmd.Flags().Changed(name) {
			overrides[key] = cmd.Flags().Lookup(name).Value.String()
		}
	}
	return overrides
}

func runMerge(cmd *cobra.Command, global *globalOptions, opts *mergeOptions, args []string) error {
	logger := logging.GetLogger("cmd.merge")
	fs := filesystem.NewOS()

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: global.configFile,
		Flags:      changedFlags(cmd, mergeFlagKeys),
	})
	if err != nil {
		return err
	}

	renderer, errRenderer, err := newRenderers(cmd, cfg.Output.Format)
	if err != nil {
		return err
	}

	res, err := doMerge(cmd, fs, cfg, opts, args)
	if err != nil {
		logger.Debug().Err(err).Msg("Merge failed")
		if rerr := errRenderer.RenderError(err); rerr != nil {
			return err
		}
		return reported(err)
	}
	return renderer.RenderResult(res)
}

func doMerge(cmd *cobra.Command, fs types.FS, cfg *config.Config, opts *mergeOptions, args []string) (*merge.Result, error) {
	files := append([]string{}, args...)
	if opts.from != "" {
		listed, err := readInputList(cmd.InOrStdin(), fs, opts.from)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}
	if opts.output == "" && len(files) > 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoOutput)
	}

	mode, err := cfg.CompressionMode()
	if err != nil {
		return nil, err
	}
	policy, err := merge.ParsePolicy(cfg.Merge.CompressedAppend)
	if err != nil {
		return nil, err
	}
	progressMode, err := progress.ParseMode(cfg.Output.Progress)
	if err != nil {
		return nil, err
	}
	reporter, err := progress.New(progressMode, cmd.ErrOrStderr(), logging.GetLogger("progress"))
	if err != nil {
		return nil, err
	}

	m := merge.New(merge.Options{
		FS: fs,
		Copier: executor.New(executor.Options{
			Workers:    cfg.Copy.Workers,
			QueueDepth: cfg.Copy.QueueDepth,
			ChunkSize:  cfg.Copy.ChunkSize.Int(),
			FS:         fs,
		}),
		Progress:         reporter,
		BufferSize:       cfg.Merge.BufferSize.Int(),
		Level:            cfg.Merge.Level,
		QueueWait:        cfg.Copy.QueueWait.Std(),
		CompressedAppend: policy,
		Checksum:         cfg.Output.Checksum,
		DisableRename:    cfg.Merge.DisableRename,
	})

	req := merge.Request{
		Files:       files,
		Output:      opts.output,
		Compression: mode,
		Append:      cfg.Merge.Append,
		Force:       cfg.Merge.Force,
	}
	if opts.dryRun {
		return m.Preview(req)
	}
	return m.Merge(cmd.Context(), req)
}

// newRenderers returns the result renderer on stdout and the renderer used
// for errors. Structured formats report errors on stdout so consumers see
// them; text goes to stderr.
func newRenderers(cmd *cobra.Command, name string) (display.Renderer, display.Renderer, error) {
	format, err := display.ParseFormat(name)
	if err != nil {
		return nil, nil, err
	}
	if format == display.FormatAuto {
		format = display.DetectFormat(cmd.OutOrStdout())
	}

	out, err := display.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, nil, err
	}
	if format != display.FormatText && format != display.FormatTerminal {
		return out, out, nil
	}

	errOut, err := display.NewRenderer(format, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return out, errOut, nil
}

// readInputList reads one path per line from path, or from stdin for "-".
// Blank lines and lines starting with # are skipped.
func readInputList(stdin io.Reader, fs types.FS, path string) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, errors.WrapOp(err, errors.ErrFileAccess, "read", path)
		}
		r = bytes.NewReader(data)
	}

	var files []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, MsgErrReadList).WithDetail("path", path)
	}
	return files, nil
}
