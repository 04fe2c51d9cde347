package multibuffer

import "math"

// BestRoot returns the highest root of size (in blocks) that fits
// within available buffers, reserving two buffers so a scan never runs
// completely out.
func BestRoot(available, size int) int {
	avail := available - 2
	if avail <= 1 {
		return 1
	}

	k := math.MaxInt32
	i := 1.0
	for k > avail {
		i++
		k = int(math.Ceil(math.Pow(float64(size), 1/i)))
	}

	return k
}

// BestFactor returns the highest factor of size that fits within
// available buffers, reserving two buffers the same way BestRoot does.
func BestFactor(available, size int) int {
	avail := available - 2
	if avail <= 1 {
		return 1
	}

	k := size
	i := 1.0
	for k > avail {
		i++
		k = int(math.Ceil(float64(size) / i))
	}

	return k
}
