package model

import "strings"

// ParseIndustry matches s against the known industries, ignoring case,
// spaces, hyphens and underscores. Unknown values map to IndustryOther.
func ParseIndustry(s string) Industry {
	key := enumKey(s)
	for _, ind := range Industries {
		if enumKey(string(ind)) == key {
			return ind
		}
	}
	return IndustryOther
}

// Valid reports whether i is one of the known industries.
func (i Industry) Valid() bool {
	for _, ind := range Industries {
		if ind == i {
			return true
		}
	}
	return false
}

// ParseFundingStage matches s against the known stages the same way as
// ParseIndustry. Unknown values map to StageSeed.
func ParseFundingStage(s string) FundingStage {
	key := enumKey(s)
	if key == "seriesc" {
		return StageSeriesCP
	}
	for _, st := range FundingStages {
		if enumKey(string(st)) == key {
			return st
		}
	}
	return StageSeed
}

// Valid reports whether s is one of the known funding stages.
func (s FundingStage) Valid() bool {
	for _, st := range FundingStages {
		if st == s {
			return true
		}
	}
	return false
}

func enumKey(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "", "+", "")
	key := strings.ToLower(r.Replace(strings.TrimSpace(s)))
	return key
}
