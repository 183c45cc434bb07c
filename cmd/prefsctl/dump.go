package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/markup/printer"
)

var (
	dumpCompact    bool
	dumpIndent     int
	dumpOmitHeader bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpCompact, "compact", false, "Print on one line without indentation")
	cmd.Flags().IntVar(&dumpIndent, "indent", printer.DefaultIndentSize, "Spaces per nesting level")
	cmd.Flags().BoolVar(&dumpOmitHeader, "no-header", false, "Omit the XML declaration")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a markup file and print it back",
		Long: `The dump command parses any markup file into a document and prints it,
either pretty-printed or compact. It does not need a profile.

Example:
  prefsctl dump prefs.xml
  prefsctl dump prefs.xml --indent 4
  prefsctl dump prefs.xml --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	printVerbose("Parsing: %s\n", path)

	doc, err := markup.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer doc.Unref()

	if dumpCompact {
		fmt.Println(printer.CompactDocument(doc))
		return nil
	}

	if dumpIndent < 0 {
		return fmt.Errorf("invalid indent %d", dumpIndent)
	}
	opts := printer.DefaultOptions()
	opts.IndentSize = dumpIndent
	opts.OmitHeader = dumpOmitHeader
	return printer.Pretty(os.Stdout, doc, opts)
}
