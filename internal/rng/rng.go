package rng

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Shuffle permutes n elements with the Fisher-Yates algorithm.
// It walks from the last element to the first, swapping element j with a
// uniformly chosen index in [0, j].
func Shuffle(gen Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		swap(gen.Intn(j+1), j)
	}
}
