package api

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskmanager/m/domain"
)

// Auth handlers

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		respondError(w, http.StatusBadRequest, "role must be user or admin")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	// The UNIQUE constraint on username is the arbiter for concurrent
	// registrations; the insert runs in its own transaction so a duplicate
	// can never be half-committed.
	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start registration")
		return
	}

	var userID int64
	err = tx.QueryRowx(`INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING id`, req.Username, hashed, req.Role).Scan(&userID)
	if err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			respondError(w, http.StatusConflict, "username already taken")
		} else {
			respondError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to complete registration")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"msg": "user created", "id": userID})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}

	// Unknown username and wrong password produce the same response so the
	// endpoint cannot be used to enumerate accounts.
	var user domain.User
	err := h.db.Get(&user, `SELECT id, username, password, role FROM users WHERE username = $1`, req.Username)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "bad username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "bad username or password")
		return
	}

	token, err := h.generateToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
