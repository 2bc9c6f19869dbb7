package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

/* ===================== DTOs ====================== */

type registerReq struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/* ===================== Cookie helpers ====================== */

func (a *api) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.cfg.CookieSecure,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

/* ===================== Handlers ====================== */

// POST /api/auth/register
func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email, username and password required")
		return
	}
	if in.Password != in.ConfirmPassword {
		errorJSON(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	exists, err := a.store.UserExists(in.Email, in.Username)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	if exists {
		errorJSON(w, http.StatusBadRequest, "Email or username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	u := User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
	}
	if err := a.store.CreateUser(&u); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	// The created identity is never returned; the client logs in afterwards.
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful"})
}

// POST /api/auth/login
func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	in.Username = strings.TrimSpace(in.Username)

	u, err := a.store.UserByUsername(in.Username)
	if err == ErrNotFound {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	} else if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Server error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	// The session cookie is a convenience on top of the bare-id contract.
	if tok, err := a.signToken(u.ID, 24*30); err == nil {
		a.setAuthCookie(w, tok)
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": u.ID})
}
