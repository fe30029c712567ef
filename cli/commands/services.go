package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// creates and returns the "services" command
func services(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List services recorded by previous scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := props.Core.GetServices()

			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			fmt.Fprintln(w, "TARGET\tPORT\tSERVICE\tSTATUS\tLAST SEEN")

			for _, svc := range svcs {
				fmt.Fprintf(
					w,
					"%s\t%d\t%s\t%s\t%s\n",
					svc.Target,
					svc.Port,
					svc.Name,
					svc.Status,
					svc.LastSeen.Format("2006-01-02 15:04:05"),
				)
			}

			return w.Flush()
		},
	}

	return cmd
}
