package vista

import (
	"fmt"
	"io"
	"strings"
)

// Describe returns a one-line summary of an attribute's value.
func Describe(reg *Registry, a *Attribute) string {
	if text, ok := scalarText(a.Kind, a.Value); ok {
		if a.Kind == StringRepn {
			return fmt.Sprintf("%q", text)
		}
		return text + " (" + reg.Name(a.Kind) + ")"
	}
	switch v := a.Value.(type) {
	case *List:
		return fmt.Sprintf("{%d attributes}", v.Len())
	case *Bundle:
		return fmt.Sprintf("%s bundle, %d bytes", v.TypeName, v.Length)
	case *Image:
		return fmt.Sprintf("image %dx%dx%d %s", v.NBands(), v.NRows(), v.NColumns(), reg.Name(v.Repn()))
	case *Graph:
		return fmt.Sprintf("graph %d of %d nodes, %d %s fields", v.NNodes(), v.Size(), v.NFields(), reg.Name(v.NodeRepn()))
	case *Edges:
		return fmt.Sprintf("edges %dx%d, %d edges, %d points", v.NRows(), v.NColumns(), v.NEdges(), v.NPoints())
	}
	return reg.Name(a.Kind)
}

// Fprint writes one line per attribute of list, indented by depth,
// giving its path and a summary of its value.
func Fprint(w io.Writer, reg *Registry, list *List) error {
	return Walk(list, func(path string, a *Attribute) error {
		listPath := path[:strings.LastIndexByte(path, '@')]
		depth := strings.Count(strings.TrimSuffix(listPath, "/"), "/")
		_, err := fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat("  ", depth), path, Describe(reg, a))
		return err
	})
}
