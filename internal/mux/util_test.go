package mux

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/jwt"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))
}

func Test_isLoopback(t *testing.T) {
	a := assert.New(t)

	a.True(isLoopback(&http.Request{RemoteAddr: "127.0.0.1:5000"}))
	a.True(isLoopback(&http.Request{RemoteAddr: "[::1]:5000"}))
	a.False(isLoopback(&http.Request{RemoteAddr: "192.168.1.20:5000"}))
	a.False(isLoopback(&http.Request{RemoteAddr: "garbage"}))

	r := &http.Request{RemoteAddr: "10.0.0.2:5000", Header: http.Header{}}
	r.Header.Set("X-Forwarded-For", "127.0.0.1")
	a.False(isLoopback(r))
}

func Test_writeJSONError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusUnauthorized, errInvalidToken)
	a.Equal(http.StatusUnauthorized, w.Code)
	a.JSONEq(`{"message":"invalid identity token","statusCode":401}`, w.Body.String())

	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errInvalidToken)
	a.JSONEq(`{"message":"Internal Server Error","statusCode":500}`, w.Body.String())
}

func setupJWT() {
	jwt.Configure("mux-test-secret", time.Hour)
}

// newTestServer starts a server for a fresh table
func newTestServer(t *testing.T, options blackjack.Options) (*httptest.Server, *Mux) {
	t.Helper()
	setupJWT()

	tbl, err := blackjack.NewTable(logrus.StandardLogger(), options)
	if err != nil {
		t.Fatal(err)
	}

	m := NewMux("v1.2.3", tbl)
	ts := httptest.NewServer(m)
	t.Cleanup(func() {
		ts.Close()
		m.Close()
	})

	return ts, m
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode)
}
