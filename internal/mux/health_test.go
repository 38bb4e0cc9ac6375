package mux

import (
	"testing"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/bmizerany/assert"
)

func TestHealthHandler(t *testing.T) {
	ts, _ := newTestServer(t, blackjack.DefaultOptions())

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}
