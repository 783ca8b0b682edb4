package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockreg/pkg/cli/internal/output"
)

func newListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mocks in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type listItem struct {
				Index  int    `json:"index"`
				ID     string `json:"id"`
				Name   string `json:"name,omitempty"`
				Method string `json:"method,omitempty"`
				URL    string `json:"url"`
				Status int    `json:"status"`
			}

			mocks, _, err := global.loadMocks(cmd)
			if err != nil {
				return err
			}

			items := make([]listItem, 0, len(mocks))
			for i, m := range mocks {
				items = append(items, listItem{
					Index:  i,
					ID:     m.ID,
					Name:   m.Name,
					Method: m.Method,
					URL:    m.URL,
					Status: m.Reply.StatusCode(),
				})
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				return output.JSON(out, items)
			}

			w := output.Table(out)
			fmt.Fprintln(w, "#\tID\tMETHOD\tURL\tSTATUS")
			for _, it := range items {
				method := it.Method
				if method == "" {
					method = "*"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", it.Index, it.ID, method, it.URL, it.Status)
			}
			return w.Flush()
		},
	}
}
