package main

import (
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-vista/vista"
)

func newDumpCmd() *cobra.Command {
	var raw, headerOnly bool

	cmd := &cobra.Command{
		Use:   "dump FILE [LIST-PATH]",
		Short: "Print the attribute tree of a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			var opts []vista.ReadOption
			switch {
			case headerOnly:
				opts = append(opts, vista.HeaderOnly())
			case raw:
				opts = append(opts, vista.WithoutDecode())
			}

			list, err := vista.ReadFileNamed(args[0], e.reg, opts...)
			if err != nil {
				return err
			}
			defer list.Destroy()
			e.logger.Debug("read file", "file", args[0], "attributes", list.Len())

			if len(args) == 2 {
				if list, err = vista.LookupList(list, args[1]); err != nil {
					return err
				}
			}
			return vista.Fprint(cmd.OutOrStdout(), e.reg, list)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "do not decode objects")
	cmd.Flags().BoolVar(&headerOnly, "header", false, "read the header only")
	return cmd
}
