package model

import (
	"strings"
	"testing"
)

func testLibrary() *Library {
	return &Library{
		Assets: []*Asset{
			{UID: "a1", Title: "Forest Pack", Status: "approved"},
			{UID: "a2", Title: "Desert Pack", Status: "pending"},
			{UID: "a3", Title: "Forest Extras", Status: "approved"},
		},
		TotalCount: 3,
	}
}

func TestLibrary_FindByUID(t *testing.T) {
	lib := testLibrary()

	if got := lib.FindByUID("a2"); got == nil || got.Title != "Desert Pack" {
		t.Errorf("FindByUID(a2) = %v, want Desert Pack", got)
	}

	if got := lib.FindByUID("missing"); got != nil {
		t.Errorf("FindByUID(missing) = %v, want nil", got)
	}
}

func TestLibrary_Filter(t *testing.T) {
	lib := testLibrary()

	filtered := lib.Filter(func(a *Asset) bool {
		return strings.HasPrefix(a.Title, "Forest")
	})

	if filtered.Len() != 2 {
		t.Errorf("filtered.Len() = %d, want 2", filtered.Len())
	}
	if filtered.TotalCount != 2 {
		t.Errorf("filtered.TotalCount = %d, want 2", filtered.TotalCount)
	}

	// Filter never mutates the receiver.
	if lib.Len() != 3 || lib.TotalCount != 3 {
		t.Errorf("original library mutated: len=%d total=%d", lib.Len(), lib.TotalCount)
	}
}

func TestLibrary_FilterByStatus(t *testing.T) {
	lib := testLibrary()

	approved := lib.FilterByStatus("approved")
	if approved.Len() != 2 {
		t.Errorf("approved.Len() = %d, want 2", approved.Len())
	}
	for _, a := range approved.Assets {
		if a.Status != "approved" {
			t.Errorf("asset %s has status %q", a.UID, a.Status)
		}
	}

	none := lib.FilterByStatus("rejected")
	if none.Len() != 0 {
		t.Errorf("none.Len() = %d, want 0", none.Len())
	}
}
