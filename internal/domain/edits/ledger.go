package edits

// Ledger is the aggregate view of the store used by the salary report: one
// active amount per (license, shift) key, where a new upsert replaces the
// previous correction.
type Ledger struct {
	store *Store
}

// NewLedger wraps a store with latest-wins semantics.
func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

// All returns every edit in storage order.
func (l *Ledger) All() []Edit {
	return l.store.Load()
}

// Upsert overwrites the amount and note of an existing (license, shift)
// record, or appends a new one. The timestamp is refreshed either way.
func (l *Ledger) Upsert(license, shift string, amount float64, note string) error {
	key := NewKey(license, shift)
	return l.store.Update(func(all []Edit) []Edit {
		ts := l.store.timestamp()
		found := false
		for i := range all {
			if all[i].Key() == key {
				all[i].Amount = amount
				all[i].Note = note
				all[i].Timestamp = ts
				found = true
			}
		}
		if !found {
			all = append(all, Edit{
				License:   key.License,
				Shift:     key.Shift,
				Amount:    amount,
				Note:      note,
				Timestamp: ts,
			})
		}
		return all
	})
}

// Delete removes every record matching the key.
func (l *Ledger) Delete(license, shift string) error {
	key := NewKey(license, shift)
	return l.store.Update(func(all []Edit) []Edit {
		kept := all[:0]
		for _, e := range all {
			if e.Key() != key {
				kept = append(kept, e)
			}
		}
		return kept
	})
}

// Get returns the first record matching the key.
func (l *Ledger) Get(license, shift string) (Edit, bool) {
	key := NewKey(license, shift)
	for _, e := range l.store.Load() {
		if e.Key() == key {
			return e, true
		}
	}
	return Edit{}, false
}

// Relevant filters the ledger down to the keys present in a dataset.
func (l *Ledger) Relevant(keys map[Key]struct{}) []Edit {
	var out []Edit
	for _, e := range l.store.Load() {
		if _, ok := keys[e.Key()]; ok {
			out = append(out, e)
		}
	}
	return out
}
