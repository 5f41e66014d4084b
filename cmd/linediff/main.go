// Command linediff compares two text files and prints the changed
// regions.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dacharyc/linediff"
)

var (
	ignoreTrimWhitespace bool
	computeMoves         bool
	timeout              time.Duration
	legacyMode           bool
	showInner            bool
)

func main() {
	root := &cobra.Command{
		Use:           "linediff <original> <modified>",
		Short:         "Compare two text files line by line",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
	}
	root.Flags().BoolVar(&ignoreTrimWhitespace, "ignore-trim-whitespace", false,
		"treat lines that differ only in leading/trailing whitespace as equal")
	root.Flags().BoolVar(&computeMoves, "moves", false,
		"detect moved blocks of lines")
	root.Flags().DurationVar(&timeout, "timeout", 0,
		"maximum computation time (0 = unlimited)")
	root.Flags().BoolVar(&legacyMode, "legacy", false,
		"use the legacy computer and output format")
	root.Flags().BoolVar(&showInner, "inner", false,
		"print character-level changes within changed lines")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "linediff: %v\n", err)
		os.Exit(1)
	}
}

func run(originalPath, modifiedPath string) error {
	original, err := readLines(originalPath)
	if err != nil {
		return err
	}
	modified, err := readLines(modifiedPath)
	if err != nil {
		return err
	}

	if legacyMode {
		return printLegacy(original, modified)
	}

	opts := []linediff.Option{linediff.WithMaxComputationTime(timeout)}
	if ignoreTrimWhitespace {
		opts = append(opts, linediff.WithIgnoreTrimWhitespace())
	}
	if computeMoves {
		opts = append(opts, linediff.WithComputeMoves())
	}

	diff := linediff.ComputeDiff(original, modified, opts...)

	header := color.New(color.FgCyan)
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	move := color.New(color.FgYellow)

	for _, c := range diff.Changes {
		header.Printf("@@ -%s +%s @@\n", hunkSpan(c.Original), hunkSpan(c.Modified))
		for i := c.Original.Start; i < c.Original.EndExclusive; i++ {
			del.Printf("-%s\n", original[i-1])
		}
		for i := c.Modified.Start; i < c.Modified.EndExclusive; i++ {
			ins.Printf("+%s\n", modified[i-1])
		}
		if showInner {
			for _, inner := range c.InnerChanges {
				fmt.Printf("  %v -> %v\n", inner.OriginalRange, inner.ModifiedRange)
			}
		}
	}
	for _, m := range diff.Moves {
		move.Printf("~~ moved %s -> %s (%d changed regions inside)\n",
			hunkSpan(m.Mapping.Original), hunkSpan(m.Mapping.Modified), len(m.Changes))
	}
	if diff.QuitEarly {
		fmt.Fprintln(os.Stderr, "linediff: time budget exceeded, result is coarse")
	}
	return nil
}

func printLegacy(original, modified []string) error {
	computer := linediff.NewLegacyDiffComputer(original, modified, linediff.LegacyDiffOptions{
		ShouldComputeCharChanges:     showInner,
		ShouldPostProcessCharChanges: showInner,
		ShouldIgnoreTrimWhitespace:   ignoreTrimWhitespace,
		ShouldMakePrettyDiff:         true,
		MaxComputationTime:           timeout,
	})
	result := computer.ComputeDiff()
	for _, c := range result.Changes {
		fmt.Printf("(%d,%d) -> (%d,%d)\n",
			c.OriginalStartLineNumber, c.OriginalEndLineNumber,
			c.ModifiedStartLineNumber, c.ModifiedEndLineNumber)
		for _, cc := range c.CharChanges {
			fmt.Printf("  [%d:%d-%d:%d] -> [%d:%d-%d:%d]\n",
				cc.OriginalStartLineNumber, cc.OriginalStartColumn,
				cc.OriginalEndLineNumber, cc.OriginalEndColumn,
				cc.ModifiedStartLineNumber, cc.ModifiedStartColumn,
				cc.ModifiedEndLineNumber, cc.ModifiedEndColumn)
		}
	}
	if result.QuitEarly {
		fmt.Fprintln(os.Stderr, "linediff: time budget exceeded, result is coarse")
	}
	return nil
}

// hunkSpan renders a line range in unified-diff style: "start,count".
func hunkSpan(r linediff.LineRange) string {
	if r.IsEmpty() {
		return fmt.Sprintf("%d,0", r.Start-1)
	}
	return fmt.Sprintf("%d,%d", r.Start, r.Length())
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}
