package decoder

import "fmt"

// ResourceResolver maps numeric resource ids to resource names.
type ResourceResolver interface {
	ResourceName(id int) string
}

// ResourceTable is a static ResourceResolver.
// Ids missing from the table resolve to their hex form, e.g. "0x7f020001".
type ResourceTable map[int]string

// ResourceName implements ResourceResolver.
func (t ResourceTable) ResourceName(id int) string {
	if name, ok := t[id]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", id)
}
