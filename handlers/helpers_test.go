// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ST10291541/ToastAPI/aggregate"
	"github.com/ST10291541/ToastAPI/middleware"
	"github.com/ST10291541/ToastAPI/store"
	"github.com/ST10291541/ToastAPI/testutil"
)

// setupService returns a Service over a fresh SQLite store
func setupService(t *testing.T) (*aggregate.Service, store.Store) {
	t.Helper()

	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return aggregate.NewService(st, logger, cfg.BaseURL), st
}

// serve runs fn behind WithCaller, the way the router mounts it
func serve(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.WithCaller(testutil.TestAuthSecret, fn)(w, req)
	return w
}

// withID sets the {id} path value
func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}
