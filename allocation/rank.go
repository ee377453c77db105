package allocation

import "sort"

// Rank orders candidates for negotiation. Candidates with at least one bed
// are sorted ascending by delay and returned alone when any exist; otherwise
// the full list is sorted ascending by delay. Equal delays keep their input
// order. A hospital with zero beds is therefore only ever offered when
// nothing has capacity. Empty input returns an empty slice.
func Rank(candidates []Hospital) []Hospital {
	withBeds := make([]Hospital, 0, len(candidates))
	for _, c := range candidates {
		if c.AvailableBeds > 0 {
			withBeds = append(withBeds, c)
		}
	}
	if len(withBeds) > 0 {
		sort.SliceStable(withBeds, func(i, j int) bool { return withBeds[i].Delay < withBeds[j].Delay })
		return withBeds
	}

	all := append([]Hospital(nil), candidates...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Delay < all[j].Delay })
	return all
}
