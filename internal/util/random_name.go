package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Lucky", "Bold", "Sly", "Calm", "Wild", "Red", "Blue", "Green", "Gold",
	"Fuzzy", "Tall", "Grand", "Prime", "Sharp", "Cool", "Brave", "Happy",
}

var animals = []string{
	"Dog", "Cat", "Fox", "Owl", "Bear", "Wolf", "Lion", "Seal", "Yak", "Eel", "Crab", "Hawk",
	"Toad", "Mole", "Lynx", "Orca", "Deer", "Goat", "Mule", "Newt",
}

// random is replaced by tests for a repeatable sequence
var (
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	randomMu sync.Mutex
)

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
