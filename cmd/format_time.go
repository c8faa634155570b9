package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var flagStrict bool

var formatTimeCmd = &cobra.Command{
	Use:   "format-time HH:MM...",
	Short: "Convert 24-hour times to 12-hour display form",
	Long: `Prints each 24-hour HH:MM argument the way the board displays it,
e.g. 13:30 becomes 1:30 PM. Blank arguments print blank lines.

With --strict every argument must be a valid time; otherwise arguments that
do not start with a numeric hour are printed unchanged.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormatTime,
}

func init() {
	formatTimeCmd.Flags().BoolVar(&flagStrict, "strict", false, "reject arguments that are not valid HH:MM times")
	rootCmd.AddCommand(formatTimeCmd)
}

type formattedTime struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

func runFormatTime(_ *cobra.Command, args []string) error {
	results := make([]formattedTime, 0, len(args))
	for _, arg := range args {
		out, err := formatTimeArg(arg, flagStrict)
		if err != nil {
			return err
		}
		results = append(results, formattedTime{Input: arg, Output: out})
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, results)
	}
	for _, r := range results {
		fmt.Fprintln(os.Stdout, r.Output)
	}
	return nil
}

func formatTimeArg(arg string, strict bool) (string, error) {
	if !strict || strings.TrimSpace(arg) == "" {
		return task.FormatTime12Hour(arg), nil
	}
	normalized, err := task.NormalizeTime(arg)
	if err != nil {
		return "", err
	}
	return task.FormatTime12Hour(normalized), nil
}
