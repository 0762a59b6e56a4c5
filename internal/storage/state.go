package storage

// Storage keys shared with the web viewer's local storage.
const (
	SliderKey = "slider"
	PapersKey = "papers"
)

// MaxRecentPapers caps the recently viewed papers list.
const MaxRecentPapers = 10

// SavedSliders returns the persisted slider weights, or nil if none were saved.
func (d *DB) SavedSliders() ([]float64, error) {
	var weights []float64
	ok, err := d.GetJSON(SliderKey, &weights)
	if err != nil || !ok {
		return nil, err
	}
	return weights, nil
}

// SetSavedSliders persists slider weights.
func (d *DB) SetSavedSliders(weights []float64) error {
	if weights == nil {
		return nil
	}
	return d.SetJSON(SliderKey, weights)
}

// RecentPapers returns recently viewed paper IDs, most recent first.
func (d *DB) RecentPapers() ([]string, error) {
	var ids []string
	if _, err := d.GetJSON(PapersKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddRecentPaper moves id to the front of the recent papers list,
// keeping at most MaxRecentPapers entries.
func (d *DB) AddRecentPaper(id string) error {
	ids, err := d.RecentPapers()
	if err != nil {
		return err
	}

	updated := make([]string, 0, MaxRecentPapers)
	updated = append(updated, id)
	for _, existing := range ids {
		if len(updated) == MaxRecentPapers {
			break
		}
		if existing != id {
			updated = append(updated, existing)
		}
	}

	return d.SetJSON(PapersKey, updated)
}
