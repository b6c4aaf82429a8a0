package vista

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	reg := NewStandardRegistry()
	img := makeImage(t, binary.NativeEndian, 2, 3, 4, FloatRepn)
	g, err := NewGraph(4, 2, ShortRepn, false)
	require.NoError(t, err)
	_, err = g.AddNode(&Node{Fields: []float64{1, 2}})
	require.NoError(t, err)
	sub := NewList()
	sub.Append("a", StringRepn, "x")

	tests := []struct {
		kind  RepnKind
		value interface{}
		want  string
	}{
		{StringRepn, "hello world", `"hello world"`},
		{LongRepn, int32(-7), "-7 (long)"},
		{UByteRepn, uint8(200), "200 (ubyte)"},
		{AttrListRepn, sub, "{1 attributes}"},
		{BundleRepn, NewBundle("volume", nil, make([]byte, 12)), "volume bundle, 12 bytes"},
		{ImageRepn, img, "image 2x3x4 float"},
		{GraphRepn, g, "graph 1 of 4 nodes, 2 short fields"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, Describe(reg, &Attribute{Name: "v", Kind: tt.kind, Value: tt.value}))
		})
	}
}

func TestFprint(t *testing.T) {
	reg := NewStandardRegistry()
	inner := NewList()
	inner.Append("depth", StringRepn, "2")
	sub := NewList()
	sub.Append("inner", AttrListRepn, inner)
	list := NewList()
	list.Append("sub", AttrListRepn, sub)
	list.Append("top", LongRepn, int32(1))

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, reg, list))
	require.Equal(t, `/@sub: {1 attributes}
  /sub@inner: {1 attributes}
    /sub/inner@depth: "2"
/@top: 1 (long)
`, buf.String())
}
