package model

// Library is an ordered collection of assets along with the total count
// reported by the server.
//
// A Library is immutable once constructed: Filter and FilterByStatus
// return new Library values and never mutate the receiver.
type Library struct {
	// Assets holds every asset in the library, in server order.
	Assets []*Asset

	// TotalCount is the total reported by the server on the first page
	// of results, or the concatenated asset count when the server omits
	// it.
	TotalCount int
}

// Len returns the number of assets in the library.
func (l *Library) Len() int {
	return len(l.Assets)
}

// FindByUID returns the asset with the given UID, or nil when no such
// asset exists. UID is the sole identity key.
func (l *Library) FindByUID(uid string) *Asset {
	for _, a := range l.Assets {
		if a.UID == uid {
			return a
		}
	}
	return nil
}

// Filter returns a new Library containing only the assets for which the
// predicate returns true. The receiver is left untouched.
func (l *Library) Filter(pred func(*Asset) bool) *Library {
	var filtered []*Asset
	for _, a := range l.Assets {
		if pred(a) {
			filtered = append(filtered, a)
		}
	}
	return &Library{Assets: filtered, TotalCount: len(filtered)}
}

// FilterByStatus returns a new Library containing only assets whose
// entitlement status matches.
func (l *Library) FilterByStatus(status string) *Library {
	return l.Filter(func(a *Asset) bool { return a.Status == status })
}
