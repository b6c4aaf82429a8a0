package vista

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseAttrPath parses an attribute path into the path of the list
// holding the attribute and the attribute name.
// Path format: /name/name@attribute, where each name selects a sub-list,
// bundle or object by its attribute name.
//
// Examples:
//   - "/@history" -> listPath="/", attrName="history"
//   - "/image@repn" -> listPath="/image", attrName="repn"
//   - "/scan/image@patient" -> listPath="/scan/image", attrName="patient"
func ParseAttrPath(path string) (listPath, attrName string, err error) {
	if path == "" {
		return "", "", errors.Wrap(ErrInvalidPath, "empty attribute path")
	}

	at := strings.LastIndex(path, "@")
	if at == -1 {
		return "", "", errors.Wrapf(ErrInvalidPath, "missing '@' separator: %s", path)
	}

	listPath = path[:at]
	attrName = path[at+1:]
	if attrName == "" {
		return "", "", errors.Wrapf(ErrInvalidPath, "empty attribute name: %s", path)
	}
	return CleanPath(listPath), attrName, nil
}

// JoinAttrPath creates an attribute path from a list path and an
// attribute name.
func JoinAttrPath(listPath, attrName string) string {
	if listPath == "/" {
		return "/@" + attrName
	}
	return listPath + "@" + attrName
}

// SplitPath splits a path into its components, dropping empty ones.
func SplitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CleanPath normalizes a path to start with "/" and have no trailing
// slash.
func CleanPath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}

// Contents returns the list held by a sub-list, bundle or object value.
func Contents(value interface{}) (*List, bool) {
	switch v := value.(type) {
	case *List:
		return v, true
	case *Bundle:
		return v.List, v.List != nil
	case Object:
		l := v.Attrs()
		return l, l != nil
	}
	return nil, false
}

// LookupList follows a list path from root.
func LookupList(root *List, listPath string) (*List, error) {
	l := root
	for _, name := range SplitPath(listPath) {
		c, ok := l.Lookup(name)
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "%q in %s", name, listPath)
		}
		sub, ok := Contents(c.Value())
		if !ok {
			return nil, errors.Wrapf(ErrInvalidPath, "%q in %s holds no attributes", name, listPath)
		}
		l = sub
	}
	return l, nil
}

// LookupPath returns the attribute an attribute path names.
func LookupPath(root *List, path string) (*Attribute, error) {
	listPath, name, err := ParseAttrPath(path)
	if err != nil {
		return nil, err
	}
	l, err := LookupList(root, listPath)
	if err != nil {
		return nil, err
	}
	c, ok := l.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s", path)
	}
	return c.Attr(), nil
}
