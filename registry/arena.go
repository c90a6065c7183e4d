// Package registry correlates live runtime objects to stable position tags.
// Objects live in an arena addressed by integer handles; a side index maps
// each tag to the handles currently registered under it. The arena holds no
// ownership: removing an object from the application does not remove it here,
// callers must call Remove on destruction.
package registry

import (
	"sort"

	"github.com/viant/spritesync/graph"
)

// Handle identifies one live object in the arena.
type Handle uint64

type entry struct {
	object  interface{}
	tag     string
	markers []graph.Marker
}

// Arena is the bridge between a named variable in source and a live object
// in memory. It is not safe for concurrent use; the engine runs on one
// editor thread by design.
type Arena struct {
	entries map[Handle]*entry
	byTag   map[string][]Handle
	next    Handle
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		entries: map[Handle]*entry{},
		byTag:   map[string][]Handle{},
	}
}

// Add stores a live object and returns its handle.
func (a *Arena) Add(object interface{}) Handle {
	a.next++
	handle := a.next
	a.entries[handle] = &entry{object: object}
	return handle
}

// Remove drops the object, untagging it first.
func (a *Arena) Remove(handle Handle) {
	if _, ok := a.entries[handle]; !ok {
		return
	}
	a.Untag(handle)
	delete(a.entries, handle)
}

// Object returns the stored object, or nil for an unknown handle.
func (a *Arena) Object(handle Handle) interface{} {
	item, ok := a.entries[handle]
	if !ok {
		return nil
	}
	return item.object
}

// Tag registers the object under tag. An object appears under at most one
// tag at a time; re-tagging replaces the previous association.
func (a *Arena) Tag(handle Handle, tag string) {
	item, ok := a.entries[handle]
	if !ok {
		return
	}
	if item.tag == tag {
		return
	}
	a.Untag(handle)
	item.tag = tag
	a.byTag[tag] = append(a.byTag[tag], handle)
}

// Untag removes the object from its current tag, deleting the tag entry once
// its list empties.
func (a *Arena) Untag(handle Handle) {
	item, ok := a.entries[handle]
	if !ok || item.tag == "" {
		return
	}
	handles := a.byTag[item.tag]
	for i, candidate := range handles {
		if candidate == handle {
			handles = append(handles[:i], handles[i+1:]...)
			break
		}
	}
	if len(handles) == 0 {
		delete(a.byTag, item.tag)
	} else {
		a.byTag[item.tag] = handles
	}
	item.tag = ""
}

// TagOf returns the object's current tag, empty when untagged.
func (a *Arena) TagOf(handle Handle) string {
	item, ok := a.entries[handle]
	if !ok {
		return ""
	}
	return item.tag
}

// Lookup returns an independent copy of the handles registered under tag, so
// callers may mutate the arena while iterating.
func (a *Arena) Lookup(tag string) []Handle {
	handles := a.byTag[tag]
	if len(handles) == 0 {
		return nil
	}
	result := make([]Handle, len(handles))
	copy(result, handles)
	return result
}

// Handles returns a sorted copy of every live handle.
func (a *Arena) Handles() []Handle {
	result := make([]Handle, 0, len(a.entries))
	for handle := range a.entries {
		result = append(result, handle)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// SetMarkers replaces the object's marker set wholesale.
func (a *Arena) SetMarkers(handle Handle, markers []graph.Marker) {
	item, ok := a.entries[handle]
	if !ok {
		return
	}
	item.markers = markers
}

// Markers returns an independent copy of the object's marker set.
func (a *Arena) Markers(handle Handle) []graph.Marker {
	item, ok := a.entries[handle]
	if !ok || len(item.markers) == 0 {
		return nil
	}
	result := make([]graph.Marker, len(item.markers))
	copy(result, item.markers)
	return result
}
