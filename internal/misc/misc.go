package misc

import "golang.org/x/exp/constraints"

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}

func StringLimit(s string, n int) string {
	if n < 0 {
		return ""
	}
	if n <= 3 {
		return s[:Min(n, len(s))]
	}
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
