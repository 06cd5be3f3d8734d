package turn

import (
	"cmp"
	"slices"

	"github.com/samdwyer/hexclash/internal/entity"
)

// Entry is one unit considered for turn order.
type Entry struct {
	ID    entity.UnitID
	Speed int
}

// Queue is the remaining turn order of the current round, front first.
// Entries are ordered by descending speed, ties broken by ascending id,
// so two builds from the same roster always agree.
type Queue struct {
	ids []entity.UnitID
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ids: make([]entity.UnitID, 0)}
}

// FromIDs restores a queue in the given order, as stored in a snapshot.
func FromIDs(ids []entity.UnitID) *Queue {
	return &Queue{ids: append(make([]entity.UnitID, 0, len(ids)), ids...)}
}

// Build replaces the queue with entries in turn order. Duplicate ids
// keep their first entry.
func (q *Queue) Build(entries []Entry) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries)

	q.ids = make([]entity.UnitID, 0, len(sorted))
	seen := make(map[entity.UnitID]bool, len(sorted))
	for _, e := range sorted {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		q.ids = append(q.ids, e.ID)
	}
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Speed, a.Speed); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Reorder re-sorts the remaining entries with current speeds, for when
// speed modifiers change mid-round.
func (q *Queue) Reorder(speed func(entity.UnitID) int) {
	entries := make([]Entry, len(q.ids))
	for i, id := range q.ids {
		entries[i] = Entry{ID: id, Speed: speed(id)}
	}
	q.Build(entries)
}

// PopFront removes and returns the next unit.
func (q *Queue) PopFront() (entity.UnitID, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id := q.ids[0]
	q.ids = slices.Delete(q.ids, 0, 1)
	return id, true
}

// PeekFront returns the next unit without removing it.
func (q *Queue) PeekFront() (entity.UnitID, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	return q.ids[0], true
}

// Remove purges id from the queue, keeping the order of everyone else.
func (q *Queue) Remove(id entity.UnitID) bool {
	i := slices.Index(q.ids, id)
	if i < 0 {
		return false
	}
	q.ids = slices.Delete(q.ids, i, i+1)
	return true
}

// PushBack appends id at the end of the round. Ids already queued are
// left where they are.
func (q *Queue) PushBack(id entity.UnitID) bool {
	if q.Contains(id) {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

// Contains reports whether id is still queued.
func (q *Queue) Contains(id entity.UnitID) bool {
	return slices.Contains(q.ids, id)
}

// Len returns the number of queued units.
func (q *Queue) Len() int {
	return len(q.ids)
}

// IDs returns a copy of the remaining order.
func (q *Queue) IDs() []entity.UnitID {
	return append(make([]entity.UnitID, 0, len(q.ids)), q.ids...)
}

// Clone returns an independent copy.
func (q *Queue) Clone() *Queue {
	return FromIDs(q.ids)
}
