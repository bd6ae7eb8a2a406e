package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/scanner"
)

func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "List the media files a run would consider, without transcribing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}

			res, err := scanner.New(cfg.Scan.Extensions).Scan(cfg.Paths.Root)
			if err != nil {
				return err
			}

			suffix := cfg.Output.Suffix
			if suffix == "" {
				suffix = config.DefaultSuffix
			}
			pendingOnly, _ := cmd.Flags().GetBool("pending")

			out := cmd.OutOrStdout()
			pending := 0
			for _, path := range res.Files {
				done := fileExists(processor.NewMediaFile(path).TranscriptPath(suffix))
				if !done {
					pending++
				}
				if pendingOnly && done {
					continue
				}
				status := "pending"
				if done {
					status = "done"
				}
				fmt.Fprintf(out, "%-7s  %s\n", status, path)
			}
			fmt.Fprintf(out, "\n%d directories, %d media files, %d pending\n",
				len(res.Subdirectories), len(res.Files), pending)
			return nil
		},
	}

	scanCmd.Flags().Bool("pending", false, "Only list files without a transcript")
	return scanCmd
}
