package mapper

import "strings"

// Pattern classifies an event entity name by its recognized suffix.
type Pattern int

const (
	PatternGeneric Pattern = iota
	PatternStart
	PatternComplete
	PatternFinish
	PatternCancel
	PatternAbort
	PatternAssign
	PatternReplace
	PatternEvaluate
	PatternAssess
	PatternApprove
	PatternReject
	PatternCreate
	PatternUpdate
)

// patternSuffixes lists the recognized suffixes in match order. The order
// is part of the contract: for a name ending in more than one suffix the
// first entry wins.
var patternSuffixes = []struct {
	pattern Pattern
	suffix  string
}{
	{PatternStart, "Start"},
	{PatternComplete, "Complete"},
	{PatternFinish, "Finish"},
	{PatternCancel, "Cancel"},
	{PatternAbort, "Abort"},
	{PatternAssign, "Assign"},
	{PatternReplace, "Replace"},
	{PatternEvaluate, "Evaluate"},
	{PatternAssess, "Assess"},
	{PatternApprove, "Approve"},
	{PatternReject, "Reject"},
	{PatternCreate, "Create"},
	{PatternUpdate, "Update"},
}

// Suffix returns the name suffix that selects the pattern, empty for
// PatternGeneric.
func (p Pattern) Suffix() string {
	for _, entry := range patternSuffixes {
		if entry.pattern == p {
			return entry.suffix
		}
	}
	return ""
}

// Canonical maps alias patterns to the pattern whose handler they share:
// Finish behaves as Complete, Abort as Cancel, Assess as Evaluate. The
// action label is still taken from the original suffix.
func (p Pattern) Canonical() Pattern {
	switch p {
	case PatternFinish:
		return PatternComplete
	case PatternAbort:
		return PatternCancel
	case PatternAssess:
		return PatternEvaluate
	}
	return p
}

// Action returns the lowercase action verb used in paths and operation IDs.
func (p Pattern) Action() string {
	return strings.ToLower(p.Suffix())
}

// Match is the result of classifying an event name: the pattern and the
// base subject preceding the suffix.
type Match struct {
	Pattern Pattern
	Base    string
}

// MatchEventName classifies an event entity name by suffix. A match
// requires a non-empty base, so a bare suffix like "Start" stays generic.
func MatchEventName(name string) (Match, bool) {
	for _, entry := range patternSuffixes {
		if strings.HasSuffix(name, entry.suffix) && len(name) > len(entry.suffix) {
			return Match{Pattern: entry.pattern, Base: strings.TrimSuffix(name, entry.suffix)}, true
		}
	}
	return Match{Pattern: PatternGeneric, Base: name}, false
}

// aggregationSuffixes is the reduced match order used when recovering the
// (resource, action) pair for aggregation paths: Assign and Replace are
// tried last.
var aggregationSuffixes = []string{
	"Start", "Complete", "Finish", "Cancel", "Abort", "Evaluate", "Assess",
	"Approve", "Reject", "Create", "Update", "Assign", "Replace",
}

// ExtractResourceAndAction recovers the (resource, action) pair from an
// event name for aggregation endpoints. Unmatched names return the whole
// name as resource with the action "Event".
func ExtractResourceAndAction(name string) (resource, action string) {
	for _, suffix := range aggregationSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return strings.TrimSuffix(name, suffix), suffix
		}
	}
	return name, "Event"
}
