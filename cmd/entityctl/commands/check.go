package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jholhewres/msgentity/pkg/msgentity/sanitize"
	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func newCheckCmd() *cobra.Command {
	var mode string
	var skipBotCommands bool
	var onlyURLs bool

	cmd := &cobra.Command{
		Use:   "check [text]",
		Short: "Run one pipeline stage over text and print the resulting spans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if err := loadExtensions(configPath); err != nil {
				return err
			}
			loadEnvFiles()

			logger := newLogger(false, verbose)
			logger = logger.With("correlation_id", uuid.NewString())

			e := newEngine()
			text := args[0]
			var outText string
			var spans []span.Span
			var err error

			switch mode {
			case "find":
				spans = e.FindEntities(text, skipBotCommands, onlyURLs)
				outText = text
			case "markdown-v1":
				outText, spans, err = e.ParseMarkdownV1(text)
			case "markdown-v2":
				outText, spans, err = e.ParseMarkdownV2(text)
			case "html":
				outText, spans, err = e.ParseHTML(text)
			case "sanitize":
				outText, spans, err = e.FixFormattedText(text, nil, sanitize.Options{})
			default:
				return fmt.Errorf("unknown mode %q (want find, markdown-v1, markdown-v2, html, or sanitize)", mode)
			}
			if err != nil {
				logger.Error("pipeline stage failed", "mode", mode, "err", err)
				return err
			}

			logger.Info("processed text", "mode", mode, "span_count", len(spans))
			fmt.Printf("text: %q\n", outText)
			for _, s := range spans {
				fmt.Printf("  %s@%d..%d %q\n", s.Kind, s.Offset, s.Offset+s.Length, s.Argument)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "find", "pipeline stage: find, markdown-v1, markdown-v2, html, sanitize")
	cmd.Flags().BoolVar(&skipBotCommands, "skip-bot-commands", false, "skip bot command scanning in find mode")
	cmd.Flags().BoolVar(&onlyURLs, "only-urls", false, "only scan for URLs/emails in find mode")
	return cmd
}
