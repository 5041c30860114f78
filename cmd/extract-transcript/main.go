package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

const usage = "Usage: extract-transcript <invocation_log> [output_file]"

// errUsage is returned when the invocation log argument is missing.
var errUsage = errors.New("missing invocation log argument")

func main() {
	log.SetStyles(logStyles())

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract-transcript",
		Usage:     "Convert a stream-json invocation log into a readable markdown transcript",
		ArgsUsage: "<invocation_log> [output_file]",
		HideHelp:  true,
		Writer:    os.Stdout,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 {
				return errUsage
			}

			doc, err := extractTranscript(args.Get(0))
			if err != nil {
				return err
			}

			if args.Len() >= 2 {
				return writeOutput(args.Get(1), doc)
			}
			if _, err := fmt.Fprintln(cmd.Writer, doc); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}

// logStyles shortens the level badges of the default logger.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"})
	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"})
	return styles
}
