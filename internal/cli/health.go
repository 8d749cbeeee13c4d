package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newHealthCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rt.api.Health(cmd.Context())
			if err != nil {
				return err
			}
			return rt.output().Print(result, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Server: %s (%s)\n", result.Status, rt.cfg.APIURL)
				return err
			})
		},
	}
}
