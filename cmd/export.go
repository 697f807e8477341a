package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ankitkaran99/tinymce-components/internal/catalog"
	"github.com/ankitkaran99/tinymce-components/internal/config"
	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/session"
)

var exportCmd = &cobra.Command{
	Use:     "export <document.html>",
	Aliases: []string{"e"},
	Short:   "Print a document with engine bookkeeping stripped",
	Long: `Export loads a document, registers the built-in catalog, and prints the
content with all data-component, data-instance-id, data-prop-* and drag
marker attributes removed, yielding clean publishable markup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		markup, err := readDocument(args[0])
		if err != nil {
			return err
		}
		host, err := dom.NewHost(markup)
		if err != nil {
			return err
		}
		sess := session.New(host, session.WithLogger(logging.NewNop()))
		if err := catalog.RegisterAll(sess.Registry()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sess.ExportHTML(cfg.Export.KeepInstanceIDs))
		return nil
	},
}

// readDocument loads a document file, capping reads at a sane size.
func readDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	const maxDocumentSize = 16 << 20
	if info.Size() > maxDocumentSize {
		return "", fmt.Errorf("document %s exceeds %d bytes", path, maxDocumentSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	exportCmd.Flags().Bool("keep-ids", false, "retain data-instance-id attributes in the output")
	viper.BindPFlag("export.keep_instance_ids", exportCmd.Flags().Lookup("keep-ids"))
	rootCmd.AddCommand(exportCmd)
}
