package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-vista/vista"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE ATTR-PATH...",
		Short: "Print attributes by path, such as /scan/image@repn",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			list, err := vista.ReadFileNamed(args[0], e.reg, vista.HeaderOnly())
			if err != nil {
				return err
			}
			defer list.Destroy()

			for _, path := range args[1:] {
				a, err := vista.LookupPath(list, path)
				if err != nil {
					return err
				}
				var s string
				if a.Kind == vista.StringRepn {
					s = a.Value.(string)
				} else {
					s = vista.Describe(e.reg, a)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s)
			}
			return nil
		},
	}
}
