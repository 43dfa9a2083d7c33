// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request completion with method, path, status and duration_ms.

# Caller Resolution

Resolve the Authorization header before the handler runs:

	mux.HandleFunc("POST /api/events", middleware.WithCaller(cfg.AuthSecret, h.Create))

	caller := middleware.CallerFrom(r.Context())

No header means a guest. An invalid or expired bearer token is rejected
with 401 and the handler is never called.

# Errors

Service errors carry a kind that decides the status code:

	middleware.ServiceError(w, err)

	not_found 404, invalid_input 400, unauthorized 401, forbidden 403,
	conflict 409, store_unavailable 503

Only the client-safe message is written; the cause stays in the logs.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")

	var req models.SubmitRSVPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

The request origin is echoed back so the share page can call the API from
another host. Preflight requests are answered with 204.
*/
package middleware
