package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/sentence"
)

func newReformatCmd() *cobra.Command {
	reformatCmd := &cobra.Command{
		Use:   "reformat [FILE...]",
		Short: "Apply sentence-per-line formatting to existing text",
		Long: `Reformat raw transcript text into one sentence per line, using the same
rules as the transcription pipeline. Reads stdin when no files are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inPlace, _ := cmd.Flags().GetBool("in-place")

			if len(args) == 0 {
				if inPlace {
					return fmt.Errorf("--in-place needs at least one file")
				}
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), sentence.Reformat(string(data)))
				return err
			}

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				text := sentence.Reformat(string(data))

				if inPlace {
					if err := os.WriteFile(path, []byte(text), 0644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					continue
				}
				if !strings.HasSuffix(text, "\n") {
					text += "\n"
				}
				if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
					return err
				}
			}
			return nil
		},
	}

	reformatCmd.Flags().BoolP("in-place", "i", false, "Rewrite the files instead of printing")
	return reformatCmd
}
