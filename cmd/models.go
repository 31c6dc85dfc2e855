package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/zhubert/chatsh/internal/converter/openai"
	"github.com/zhubert/chatsh/internal/ui"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the registered model variants",
	Long: `Lists the model ids chatsh knows how to prompt and the reply schema each
one is asked for. Other model ids are accepted and use the array schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printModels(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func printModels(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("MODEL", "SCHEMA", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return cell.Inherit(ui.HeadingStyle)
			}
			return cell
		})

	for _, v := range openai.Variants() {
		marker := ""
		if v.Model == openai.DefaultModel {
			marker = "(default)"
		}
		t.Row(v.Model, v.Schema.String(), marker)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
