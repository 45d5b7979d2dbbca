package testdata

// Switch is a test case for checking a switch statement.
func Switch(x int) string {
	switch x {
	case 0:
		return "x is 0"
	case 1:
		return "x is 1"
	case 2:
		return "x is 2"
	}
	return "x is neither 0, 1, nor 2"
}

// SwitchGuarded is a test case for a switch whose cases are partly infeasible.
func SwitchGuarded(x int) string {
	if x < 0 || x > 1 {
		return "out of range"
	}
	switch x {
	case 0:
		return "x is 0"
	case 1:
		return "x is 1"
	case 2:
		return "x is 2"
	}
	return "unreachable"
}
