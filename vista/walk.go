package vista

import (
	"github.com/cockroachdb/errors"
)

// SkipList may be returned by a WalkFunc to skip the contents of the
// sub-list, bundle or object it was called for.
var SkipList = errors.New("skip this list")

// WalkFunc is called for each attribute during traversal. path is the
// attribute path of a, such as "/scan/image@repn".
// Return nil to continue walking, SkipList to skip a's contents, or any
// other error to stop.
type WalkFunc func(path string, a *Attribute) error

// Walk visits every attribute of list depth-first, in list order. An
// attribute holding a sub-list, bundle or object is visited before its
// contents.
//
// Example:
//
//	Walk(list, func(path string, a *vista.Attribute) error {
//	    fmt.Println(path, reg.Name(a.Kind))
//	    return nil
//	})
func Walk(list *List, fn WalkFunc) error {
	return walkList("/", list, fn)
}

func walkList(listPath string, l *List, fn WalkFunc) error {
	for c := l.First(); c.Exists(); c.Next() {
		a := c.Attr()
		err := fn(JoinAttrPath(listPath, a.Name), a)
		if errors.Is(err, SkipList) {
			continue
		}
		if err != nil {
			return err
		}
		if sub, ok := Contents(a.Value); ok && a.Kind != PointerRepn {
			if err := walkList(childPath(listPath, a.Name), sub, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func childPath(listPath, name string) string {
	if listPath == "/" {
		return "/" + name
	}
	return listPath + "/" + name
}
