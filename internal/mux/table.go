package mux

import "net/http"

// getTable returns the same snapshot the websocket clients receive
func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.table.Snapshot())
	}
}
