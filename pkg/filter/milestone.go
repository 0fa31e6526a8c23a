package filter

import "github.com/goblinsan/things-diff/pkg/types"

// Milestones narrows issues by milestone title.
//
// A non-empty include list keeps only issues whose milestone it names. A
// non-empty exclude list then drops issues whose milestone it names. Include
// always runs first, so a milestone in both lists is excluded. The input is
// never modified; a nil input yields an empty mapping.
func Milestones(issues types.Issues, include, exclude []string) types.Issues {
	includeSet := toSet(include)
	excludeSet := toSet(exclude)

	result := make(types.Issues, len(issues))
	for number, issue := range issues {
		if len(includeSet) > 0 {
			if _, ok := includeSet[issue.Milestone]; !ok {
				continue
			}
		}
		result[number] = issue
	}

	if len(excludeSet) == 0 {
		return result
	}
	for number, issue := range result {
		if _, ok := excludeSet[issue.Milestone]; ok {
			delete(result, number)
		}
	}
	return result
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
