package types

// BugID is an opaque bug tracker identifier. It is never parsed or validated.
type BugID string

type BugFilter struct {
	BaseURL        string
	Product        string
	Status         string
	Classification string
	Versions       []string
}

// ItemFailure records one per-bug failure collected under FailurePolicyContinue.
type ItemFailure struct {
	Bug BugID
	Err error
}

func BugIDsFromStrings(values []string) []BugID {
	if len(values) == 0 {
		return nil
	}
	ids := make([]BugID, 0, len(values))
	for _, value := range values {
		ids = append(ids, BugID(value))
	}
	return ids
}

func BugIDStrings(ids []BugID) []string {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, string(id))
	}
	return values
}
