package mines

func absDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func iif[T any](condition bool, valueIfTrue, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	}
	return valueIfFalse
}
