package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/example/go-siphon/internal/pinyin"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "tables [onset|rhyme]",
		Short:     "Print the Pinyin to IPA lookup tables",
		ValidArgs: []string{"onset", "rhyme"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := ""
			if len(args) == 1 {
				which = args[0]
			}
			return writeTables(cmd.OutOrStdout(), which)
		},
	}

	return cmd
}

// writeTables renders the onset table, the rhyme table, or both when which
// is empty.
func writeTables(w io.Writer, which string) error {
	if which == "" || which == "onset" {
		if err := writeTable(w, "ONSET", pinyin.Onsets(), pinyin.OnsetIPA); err != nil {
			return err
		}
	}
	if which == "" || which == "rhyme" {
		if err := writeTable(w, "RHYME", pinyin.Rhymes(), pinyin.RhymeIPA); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, title string, keys []string, lookup func(string) (string, bool)) error {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		ipa, _ := lookup(k)
		rows = append(rows, []string{k, ipa})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(title, "IPA").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
