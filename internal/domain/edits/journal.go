package edits

// Journal is the per-file view of the store used by the shift report: every
// correction is kept as its own historical entry, identified by
// (license, shift, timestamp), and same-key amounts are summed when applied.
type Journal struct {
	store *Store
}

// NewJournal wraps a store with append-only semantics.
func NewJournal(store *Store) *Journal {
	return &Journal{store: store}
}

// All returns every edit in storage order.
func (j *Journal) All() []Edit {
	return j.store.Load()
}

// Append adds a new entry without touching existing ones for the same key.
func (j *Journal) Append(license, shift string, amount float64, note string) error {
	key := NewKey(license, shift)
	return j.store.Update(func(all []Edit) []Edit {
		return append(all, Edit{
			License:   key.License,
			Shift:     key.Shift,
			Amount:    amount,
			Note:      note,
			Timestamp: j.store.timestamp(),
		})
	})
}

// UpdateAt rewrites the amount and note of the entry matching key and
// timestamp, stamping it with the current time.
func (j *Journal) UpdateAt(license, shift, timestamp string, amount float64, note string) error {
	key := NewKey(license, shift)
	return j.store.Update(func(all []Edit) []Edit {
		ts := j.store.timestamp()
		for i := range all {
			if all[i].Key() == key && all[i].Timestamp == timestamp {
				all[i].Amount = amount
				all[i].Note = note
				all[i].Timestamp = ts
			}
		}
		return all
	})
}

// DeleteAt removes only the entry matching key and timestamp.
func (j *Journal) DeleteAt(license, shift, timestamp string) error {
	key := NewKey(license, shift)
	return j.store.Update(func(all []Edit) []Edit {
		kept := all[:0]
		for _, e := range all {
			if e.Key() == key && e.Timestamp == timestamp {
				continue
			}
			kept = append(kept, e)
		}
		return kept
	})
}

// Relevant filters the journal down to the keys present in a dataset.
func (j *Journal) Relevant(keys map[Key]struct{}) []Edit {
	var out []Edit
	for _, e := range j.store.Load() {
		if _, ok := keys[e.Key()]; ok {
			out = append(out, e)
		}
	}
	return out
}
