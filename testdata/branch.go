package testdata

// BranchLessThan is a test case for checking < operator.
func BranchLessThan(x int32) string {
	if x < 5 {
		return "x is smaller than 5"
	}
	return "other"
}

// BranchMultiple is a test case for checking consecutive if statements.
func BranchMultiple(x int32) string {
	if x < 5 {
		return "x is small"
	} else if 5 <= x && x < 10 {
		return "x is medium"
	}
	return "x is large"
}

// BranchDead is a test case for a branch no input can take.
func BranchDead(x int32) string {
	if x > 10 {
		if x < 5 {
			return "unreachable"
		}
		return "x is large"
	}
	return "x is small"
}

// BranchOverflow is a test case for checking wrapping arithmetic.
func BranchOverflow(x int8) bool {
	if x+1 < x {
		return true
	}
	return false
}
