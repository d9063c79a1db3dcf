package repwizard

import (
	"fmt"
	"strings"

	reptext "github.com/radiochild/utils/text"
)

// SummarizeFilters describes each filter group on its own line. How groups
// combine with each other is decided by the report backend, so no top-level
// connective is printed.
func SummarizeFilters(groups []FilterGroup) string {
	if len(groups) == 0 {
		return "no filters"
	}
	lines := []string{}
	for idx, grp := range groups {
		if len(grp.Conditions) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("group %d: %s", idx+1, grp.String()))
	}
	if len(lines) == 0 {
		return "no filters"
	}
	return strings.Join(lines, "\n")
}

func SummarizeSort(entries []SortEntry) string {
	if len(entries) < 1 {
		return ""
	}
	terms := []string{}
	for _, entry := range entries {
		terms = append(terms, entry.String())
	}
	return fmt.Sprintf("order by %s", strings.Join(terms, ", "))
}

func formatColumns(keys []string) string {
	names := []string{}
	for _, key := range keys {
		name, _, err := ParseFieldKey(key)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "show nothing"
	}
	return fmt.Sprintf("show %s", strings.Join(names, ", "))
}

func formatFilterCount(groups []FilterGroup) string {
	count := 0
	for _, grp := range groups {
		count += len(grp.Conditions)
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("filtered by %d condition(s) in %d group(s)", count, len(groups))
}

// Summary is a one-line description of a report spec.
func Summary(spec *ReportSpec) string {
	cols := formatColumns(spec.Fields)
	where := formatFilterCount(spec.Filters)
	order := SummarizeSort(spec.Sort)
	suffix := reptext.AppendText(cols, where, order)
	return fmt.Sprintf("%s: %s", spec.Name, suffix)
}
