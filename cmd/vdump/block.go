package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-vista/vista"
)

// newBlockCmd returns the rows or bands command, which copies a block of
// an image into a new file without reading the rest.
func newBlockCmd(unit string) *cobra.Command {
	var (
		image        string
		start, count int
		out          string
	)

	cmd := &cobra.Command{
		Use:   unit + " FILE",
		Short: "Extract a range of " + unit + " of an image into a new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			infos, err := scanFile(args[0], e.reg)
			if err != nil {
				return err
			}
			info, err := selectImage(infos, image)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			br := vista.NewBlockReader(f, e.reg)
			var img *vista.Image
			if unit == "rows" {
				img, err = br.RowsImage(info, start, count)
			} else {
				img, err = br.BandsImage(info, start, count)
			}
			if err != nil {
				return err
			}
			e.logger.Debug("read block", "image", info.Name, unit, start, "count", count)

			list := vista.NewList()
			list.Append(info.Name, vista.ImageRepn, img)
			defer list.Destroy()
			if out == "-" {
				return vista.WriteFile(cmd.OutOrStdout(), e.reg, list)
			}
			return vista.WriteFileNamed(out, e.reg, list)
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "name of the image (default the first)")
	cmd.Flags().IntVar(&start, "start", 0, "first "+unit[:len(unit)-1]+" to read")
	cmd.Flags().IntVar(&count, "count", 1, "number of "+unit+" to read")
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file")
	return cmd
}

func selectImage(infos []vista.ImageInfo, name string) (vista.ImageInfo, error) {
	for _, info := range infos {
		if name == "" || info.Name == name {
			return info, nil
		}
	}
	if name == "" {
		return vista.ImageInfo{}, errors.Wrap(vista.ErrNotFound, "file has no images")
	}
	return vista.ImageInfo{}, errors.Wrapf(vista.ErrNotFound, "image %q", name)
}
