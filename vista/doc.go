/*
Package vista reads and writes Vista data files.

A Vista data file is a textual header followed by a binary data segment.
The header is a nested attribute list:

	V-data 2 {
		history: "vconvert -in scan.pgm"
		image: image {
			data: 0
			length: 20
			nbands: 1
			nrows: 4
			ncolumns: 5
			repn: ubyte
			patient: "anonymous"
		}
	}
	^L

A form feed and newline end the header. Every typed record ("name: type
{ ... }") with a payload records where it lies in the data segment with
its data and length attributes. Payloads are written most significant
byte first.

# Reading and writing

A Registry maps type names to codecs and must be populated before use:

	reg := vista.NewStandardRegistry(vista.WithLogger(logger))
	list, err := vista.ReadFileNamed("scan.v", reg)
	if err != nil {
		return err
	}
	defer list.Destroy()

	for c := list.First(); c.Exists(); c.Next() {
		if img, ok := c.Value().(*vista.Image); ok {
			fmt.Println(c.Name(), img.NRows(), img.NColumns())
		}
	}

	err = vista.WriteFileNamed("out.v", reg, list)

Records of registered types become objects (*Image, *Graph, *Edges).
Records of other types stay *Bundle values holding their raw data and
are written back unchanged.

# Attributes

Scalar values are stored as text in a header and so are read back as
strings. GetAttr converts them to the requested kind:

	var nrows int32
	switch img.Attrs().GetAttr("ori_nrows", nil, vista.LongRepn, &nrows) {
	case vista.AttrFound:
	case vista.AttrNotFound:
	case vista.AttrBadValue:
	}

A Cursor walks a list and may delete as it goes; Delete leaves the
cursor on the following attribute.

# Block reads

ScanImageInfo reads only a header and describes each image. A
BlockReader then reads selected rows or bands of one image directly
from the file.
*/
package vista
