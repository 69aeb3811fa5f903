package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jholhewres/msgentity/pkg/msgentity/span"
)

func newReplCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Paste text interactively and see the spans a pipeline stage finds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if err := loadExtensions(configPath); err != nil {
				return err
			}
			loadEnvFiles()

			logger := newLogger(true, verbose)
			sessionID := uuid.NewString()
			logger.Info("repl session started", "correlation_id", sessionID, "mode", mode)

			color := term.IsTerminal(int(os.Stdout.Fd()))
			prompt := "entityctl> "
			if color {
				prompt = "\033[32mentityctl>\033[0m "
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          prompt,
				HistoryFile:     "",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("starting readline: %w", err)
			}
			defer rl.Close()

			e := newEngine()
			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt {
					continue
				}
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				if line == "" {
					continue
				}

				var outText string
				var spans []span.Span
				var stageErr error
				switch mode {
				case "markdown-v1":
					outText, spans, stageErr = e.ParseMarkdownV1(line)
				case "markdown-v2":
					outText, spans, stageErr = e.ParseMarkdownV2(line)
				case "html":
					outText, spans, stageErr = e.ParseHTML(line)
				default:
					spans = e.FindEntities(line, false, false)
					outText = line
				}
				if stageErr != nil {
					fmt.Printf("error: %v\n", stageErr)
					continue
				}
				fmt.Printf("text: %q\n", outText)
				for _, s := range spans {
					fmt.Printf("  %s@%d..%d %q\n", s.Kind, s.Offset, s.Offset+s.Length, s.Argument)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "find", "pipeline stage: find, markdown-v1, markdown-v2, html")
	return cmd
}
