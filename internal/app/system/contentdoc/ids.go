// internal/app/system/contentdoc/ids.go
package contentdoc

// Identified is implemented by every list item kind.
type Identified interface {
	ItemID() int
}

// NextID returns max(existing ids, 0) + 1.
func NextID[T Identified](items []T) int {
	maxID := 0
	for _, it := range items {
		if id := it.ItemID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf[T Identified](items []T, id int) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}
