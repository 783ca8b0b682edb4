package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockreg/pkg/cli/internal/output"
)

func newValidateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate mock files without matching requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type validateResult struct {
				Valid bool     `json:"valid"`
				Files []string `json:"files"`
				Mocks int      `json:"mocks"`
				Error string   `json:"error,omitempty"`
			}

			mocks, files, err := global.loadMocks(cmd)
			result := validateResult{Valid: err == nil, Files: files, Mocks: len(mocks)}
			if err != nil {
				result.Error = err.Error()
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				if jerr := output.JSON(out, result); jerr != nil {
					return jerr
				}
			} else if err == nil {
				fmt.Fprintf(out, "ok: %d mock(s) in %d path(s)\n", len(mocks), len(files))
			}
			return err
		},
	}
}
