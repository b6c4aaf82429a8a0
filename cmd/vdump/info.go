package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-vista/vista"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "List the images of a file and where their pixels are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			infos, err := scanFile(args[0], e.reg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, info := range infos {
				fmt.Fprintf(w, "%s: %dx%dx%d %s at %d, %d bytes\n",
					info.Name, info.NBands, info.NRows, info.NColumns,
					e.reg.Name(info.Repn), info.Address(), info.Length)
				if info.OriNRows > 0 || info.OriNColumns > 0 {
					fmt.Fprintf(w, "  cropped from %dx%dx%d at (%d, %d)\n",
						info.OriNBands, info.OriNRows, info.OriNColumns, info.TopMargin, info.LeftMargin)
				}
			}
			return nil
		},
	}
}

func scanFile(path string, reg *vista.Registry) ([]vista.ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return vista.ScanImageInfo(f, reg)
}
