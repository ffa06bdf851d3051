package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/debugtrace"
	"github.com/bjaus/debugtrace/internal/logging"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		format string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Decode documents and trace their values",
		Long: `render decodes each file, choosing the decoder by extension, and traces
the result as "<file> = <value>". With no files, standard input is read
using --format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Get("render")

			cfg, err := debugtrace.LoadConfig(opts.configPath)
			if err != nil {
				log.Info().Err(err).Msg("Some config values were replaced by defaults")
			}
			cfg.Enabled = true

			var topts []debugtrace.Option
			if plain {
				topts = append(topts, debugtrace.WithSink(
					debugtrace.NewWriterSink(debugtrace.LoggerStdOut, cmd.OutOrStdout(), "")))
			}
			tr := debugtrace.NewTracer(cfg, topts...)
			defer func() {
				if err := tr.Close(); err != nil {
					log.Warn().Err(err).Msg("Failed to close sink")
				}
			}()

			if len(args) == 0 {
				f, err := ParseFormat(format)
				if err != nil {
					return err
				}
				docs, err := decodeAll(cmd.InOrStdin(), f)
				if err != nil {
					return fmt.Errorf("stdin: %w", err)
				}
				trace(tr, "stdin", docs)
				return nil
			}

			for _, path := range args {
				docs, err := readDocuments(path)
				if err != nil {
					return err
				}
				log.Debug().Str("path", path).Int("documents", len(docs)).Msg("Decoded file")
				trace(tr, path, docs)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(JSON), fmt.Sprintf("format of standard input %v", Formats()))
	cmd.Flags().BoolVar(&plain, "plain", false, "write to standard output without timestamps")
	return cmd
}

// trace prints each document under name, numbering them when a stream
// holds more than one.
func trace(tr *debugtrace.Tracer, name string, docs []any) {
	for i, doc := range docs {
		if len(docs) > 1 {
			tr.PrintValue(fmt.Sprintf("%s[%d]", name, i), doc)
		} else {
			tr.PrintValue(name, doc)
		}
	}
}

func readDocuments(path string) ([]any, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	docs, err := decodeAll(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}
