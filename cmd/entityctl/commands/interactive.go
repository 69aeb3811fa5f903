package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick a pipeline stage and paste text via a form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if err := loadExtensions(configPath); err != nil {
				return err
			}
			loadEnvFiles()

			logger := newLogger(true, verbose)
			logger.Info("interactive session started", "correlation_id", uuid.NewString())

			var mode, text string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Pipeline stage").
						Options(
							huh.NewOption("find entities", "find"),
							huh.NewOption("markdown-v1", "markdown-v1"),
							huh.NewOption("markdown-v2", "markdown-v2"),
							huh.NewOption("restricted html", "html"),
						).
						Value(&mode),
					huh.NewText().
						Title("Text").
						Value(&text),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("running form: %w", err)
			}

			e := newEngine()
			var outText string
			var spans []span.Span
			var err error
			switch mode {
			case "markdown-v1":
				outText, spans, err = e.ParseMarkdownV1(text)
			case "markdown-v2":
				outText, spans, err = e.ParseMarkdownV2(text)
			case "html":
				outText, spans, err = e.ParseHTML(text)
			default:
				spans = e.FindEntities(text, false, false)
				outText = text
			}
			if err != nil {
				logger.Error("pipeline stage failed", "mode", mode, "err", err)
				return err
			}

			fmt.Printf("text: %q\n", outText)
			for _, s := range spans {
				fmt.Printf("  %s@%d..%d %q\n", s.Kind, s.Offset, s.Offset+s.Length, s.Argument)
			}
			return nil
		},
	}
}
