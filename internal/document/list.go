package document

import "slices"

// identified is anything addressed by id inside an ordered collection
type identified interface {
	ItemID() string
}

// editable is an element that can produce a copy of itself with one field replaced
type editable[E any] interface {
	identified
	WithField(field string, value any) (E, error)
}

func indexOf[S ~[]E, E identified](list S, id string) int {
	for i := range list {
		if list[i].ItemID() == id {
			return i
		}
	}
	return -1
}

// The helpers below never write into the backing array of list; the result is
// always a fresh slice so earlier snapshots stay intact.

func appendTo[S ~[]E, E any](list S, v E) S {
	out := make(S, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func replaceAt[S ~[]E, E any](list S, i int, v E) S {
	out := make(S, len(list))
	copy(out, list)
	out[i] = v
	return out
}

func removeAt[S ~[]E, E any](list S, i int) S {
	out := make(S, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func moveTo[S ~[]E, E any](list S, from, to int) S {
	to = clamp(to, 0, len(list)-1)
	out := make(S, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	return slices.Insert(out, to, list[from])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// updateByID replaces one field of the element with the given id
func updateByID[S ~[]E, E editable[E]](list S, id, field string, value any) (S, bool, error) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false, nil
	}
	next, err := list[i].WithField(field, value)
	if err != nil {
		return list, false, err
	}
	return replaceAt(list, i, next), true, nil
}

func removeByID[S ~[]E, E identified](list S, id string) (S, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	return removeAt(list, i), true
}

func moveByID[S ~[]E, E identified](list S, id string, newIndex int) (S, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	return moveTo(list, i, newIndex), true
}

// duplicateID returns the first id that is empty or repeated, and whether one was found
func duplicateID[S ~[]E, E identified](list S) (string, bool) {
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		id := list[i].ItemID()
		if id == "" {
			return "", true
		}
		if _, dup := seen[id]; dup {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
