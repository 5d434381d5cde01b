package domain

// FavoriteSet is the ordered set of favorited place_ID values. Order follows
// insertion so the serialized list stays stable across toggles.
type FavoriteSet []int64

func (s FavoriteSet) Contains(placeID int64) bool {
	for _, id := range s {
		if id == placeID {
			return true
		}
	}
	return false
}

// Toggle returns a new set with placeID removed when present, appended
// otherwise. The receiver is left untouched.
func (s FavoriteSet) Toggle(placeID int64) FavoriteSet {
	out := make(FavoriteSet, 0, len(s)+1)
	removed := false
	for _, id := range s {
		if id == placeID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, placeID)
	}
	return out
}

func (s FavoriteSet) Clone() FavoriteSet {
	out := make(FavoriteSet, len(s))
	copy(out, s)
	return out
}
