package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/catalog"
	"github.com/ankitkaran99/tinymce-components/internal/config"
	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/preview"
	"github.com/ankitkaran99/tinymce-components/internal/session"
)

var serveCmd = &cobra.Command{
	Use:     "serve [document.html]",
	Aliases: []string{"s"},
	Short:   "Start the preview server over a document",
	Long: `Serve starts a preview server mirroring an editing session: the live
document, the component catalog, the properties panel, and the filtered
export, with change notifications pushed to connected browsers.

An optional document file seeds the session; an empty document is used
otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.NewLogger(&logging.Config{
			Level:  logging.ParseLevel(cfg.Logging.Level),
			Format: cfg.Logging.Format,
			Output: cmd.ErrOrStderr(),
		})

		markup := "<p><br></p>"
		if len(args) == 1 {
			data, err := readDocument(args[0])
			if err != nil {
				return err
			}
			markup = data
		}
		host, err := dom.NewHost(markup)
		if err != nil {
			return err
		}

		sess := session.New(host, session.WithLogger(logger))
		if err := catalog.RegisterAll(sess.Registry()); err != nil {
			return err
		}
		for _, path := range cfg.Catalog.StyleSetFiles {
			n, err := sess.LoadStyleFile(path)
			if err != nil {
				return err
			}
			logger.Info(cmd.Context(), "style sets loaded", "file", path, "count", n)
		}
		// select the first element so the panel has content on first load
		if first := firstElement(host.DocumentRoot()); first != nil {
			sess.SelectElement(first)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := preview.NewServer(cfg, sess, logger)
		watcher := preview.NewStyleWatcher(cfg.Catalog.StylePaths, server, logger)
		go func() {
			if err := watcher.Start(ctx); err != nil {
				logger.Warn(ctx, err, "style watcher stopped")
			}
		}()
		return server.Start(ctx)
	},
}

func firstElement(root *html.Node) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) {
			return c
		}
	}
	return nil
}

func init() {
	serveCmd.Flags().Int("port", 8120, "port for the preview server")
	serveCmd.Flags().String("host", "localhost", "host for the preview server")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	rootCmd.AddCommand(serveCmd)
}
