// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/refeed/internal/auth"
	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/metrics"
	"github.com/tomtom215/refeed/internal/models"
	"github.com/tomtom215/refeed/internal/validation"
)

// Login exchanges the admin credentials for a session token.
//
// @Summary Log in
// @Description Verifies the configured admin credentials. On success returns a JWT and sets it in the rtoken cookie. Failed attempts are delayed and answered with 401 and an empty body; once a user has too many recent failures further wrong passwords get 429.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse "Malformed request"
// @Failure 401 "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many failed attempts with a wrong password"
// @Failure 500 {object} models.ErrorResponse "Token issue failure"
// @Router /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		metrics.LoginAttempts.WithLabelValues("malformed").Inc()
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.LoginAttempts.WithLabelValues("malformed").Inc()
		respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
		return
	}

	ip := remoteIP(r)
	if err := h.credentials.Check(req.User, req.Pw); err != nil {
		// Only failed attempts are throttled; the right password always gets in.
		if h.limiter.Blocked(req.User) {
			metrics.LoginAttempts.WithLabelValues("blocked").Inc()
			h.security.LogLoginFailure(req.User, ip, "too_many_failures")
			respondError(w, r, http.StatusTooManyRequests, "too many failed login attempts", nil)
			return
		}
		h.rejectLogin(w, r, req.User, ip)
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.User)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()
	if err := h.sessions.Add(ctx, token, expiresAt); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to record session", err)
		return
	}

	h.limiter.Reset(req.User)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.security.LogLoginSuccess(req.User, ip)

	setAuthCookie(w, r, token, expiresAt)
	respondJSON(w, http.StatusOK, &models.LoginResponse{JWT: token})
}

// rejectLogin waits out the failure delay and answers 401 with no body.
func (h *Handler) rejectLogin(w http.ResponseWriter, r *http.Request, username, ip string) {
	h.limiter.RecordFailure(username)
	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	h.security.LogLoginFailure(username, ip, "invalid_credentials")

	if h.failureDelay > 0 {
		timer := time.NewTimer(h.failureDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			logging.Ctx(r.Context()).Debug().Msg("Client went away during login failure delay")
			return
		}
	}
	respondEmpty(w, http.StatusUnauthorized)
}

// setAuthCookie stores the token in the rtoken cookie. The value is quoted
// for clients that read the cookie header as written by earlier releases.
func setAuthCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Quoted:   true,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// remoteIP returns the host part of RemoteAddr, which chi's RealIP has
// already replaced with the forwarded address when present.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
