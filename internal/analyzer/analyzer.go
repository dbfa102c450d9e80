package analyzer

// Aggregate re-splits the global usage result per language.
// Only languages present in results get a summary; a language that failed to
// load has no entry rather than a zero-valued one.
func Aggregate(results []LanguageResult, usage UsageResult) []LanguageSummary {
	summaries := make([]LanguageSummary, 0, len(results))

	for _, r := range results {
		used := make([]string, 0)
		unused := make([]string, 0)
		for _, key := range r.Keys.Sorted() {
			if usage.Used.Has(key) {
				used = append(used, key)
			} else {
				unused = append(unused, key)
			}
		}

		summaries = append(summaries, LanguageSummary{
			Language:        r.Language,
			TotalKeys:       r.Keys.Len(),
			UsedKeys:        used,
			UnusedKeys:      unused,
			DuplicateCount:  len(r.Duplicates),
			UsagePercentage: UsagePercentage(len(used), r.Keys.Len()),
		})
	}

	return summaries
}

// UsagePercentage returns used/total*100, or 0 when total is 0
func UsagePercentage(used, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(used) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// KeyUniverse returns the union of keys across loaded languages
func KeyUniverse(results []LanguageResult) KeySet {
	sets := make([]KeySet, 0, len(results))
	for _, r := range results {
		sets = append(sets, r.Keys)
	}
	return Union(sets...)
}
