package note

// MergeTags returns the union of existing and new tags: existing order is
// preserved as a prefix, newly introduced tags follow in their given order,
// exact duplicates collapse. added reports which of the supplied tags were
// not already present, for caller feedback.
func MergeTags(existing, newTags []string) (merged, added []string) {
	seen := make(map[string]struct{}, len(existing)+len(newTags))
	merged = make([]string, 0, len(existing)+len(newTags))
	for _, t := range existing {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
	}

	before := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		before[t] = struct{}{}
	}

	for _, t := range newTags {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
		if _, had := before[t]; !had {
			added = append(added, t)
			before[t] = struct{}{}
		}
	}
	return merged, added
}

// InitialTags builds the tag list for a freshly created note: the baseline
// tag first, then the supplied tags deduplicated and with any repeat of the
// baseline dropped.
func InitialTags(baseline string, newTags []string) []string {
	out := []string{baseline}
	seen := map[string]struct{}{baseline: {}}
	for _, t := range newTags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
