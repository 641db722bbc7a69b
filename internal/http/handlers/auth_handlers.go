package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shaikazeem2001/inventory/internal/auth"
	"github.com/shaikazeem2001/inventory/internal/models"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} MessageResult "Invalid input"
// @Failure 409 {object} MessageResult "User exists"
// @Router /api/auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)

	if msg := validateCredentials(creds); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := userRepo.CreateUser(r.Context(), models.User{
		Username:     creds.Username,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "username already exists")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	pair, err := authService.Issue(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respond(w, http.StatusCreated, RegisterResult{
		Message:      "user registered",
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} MessageResult "Invalid input"
// @Failure 401 {object} MessageResult "Unauthorized"
// @Router /api/auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	user, err := userRepo.GetByUsername(r.Context(), strings.TrimSpace(credentials.Username))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	pair, err := authService.Issue(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}

	respond(w, http.StatusOK, LoginResult{
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
		User:         summarize(user),
	})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The refresh token is single use; a new one is returned with every call.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "refresh token"
// @Success 200 {object} RefreshResult
// @Failure 400 {object} MessageResult "Invalid input"
// @Failure 401 {object} MessageResult "Unknown or expired refresh token"
// @Router /api/auth/refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	username, err := authService.Rotate(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not refresh token")
		return
	}

	user, err := userRepo.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	pair, err := authService.Issue(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}

	respond(w, http.StatusOK, RefreshResult{Token: pair.Token, RefreshToken: pair.RefreshToken})
}

// RegisterAsAdminHandler godoc
// @Summary Create user with custom role
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body RegisterAsAdminRequest true "User to create with role"
// @Success 201 {object} UserResult
// @Failure 400 {object} MessageResult "Invalid input"
// @Failure 403 {object} MessageResult "Forbidden"
// @Failure 409 {object} MessageResult "User exists"
// @Failure 500 {object} MessageResult "Server error"
// @Router /api/admin/users [post]
func RegisterAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterAsAdminRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}
	if msg := validateCredentials(CredentialsRequest{Username: req.Username, Password: req.Password}); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !models.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "role must be admin or user")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user, err := userRepo.CreateUser(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusConflict, "could not create user: username duplicated")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	respond(w, http.StatusCreated, UserResult{Message: "User created", User: summarize(user)})
}

// ListUsersHandler godoc
// @Summary List users
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} UserSummary
// @Failure 500 {object} MessageResult "Server error"
// @Router /api/admin/users [get]
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not fetch users")
		return
	}

	resp := make([]UserSummary, len(users))
	for i, u := range users {
		resp[i] = summarize(u)
	}
	respond(w, http.StatusOK, resp)
}

// PromoteAdminHandler godoc
// @Summary Promote a user to admin
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} UserResult
// @Failure 404 {object} MessageResult "User not found"
// @Router /api/admin/promote-admin/{username} [post]
func PromoteAdminHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := userRepo.SetRole(r.Context(), username, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not promote user")
		return
	}

	respond(w, http.StatusOK, UserResult{
		Message: "User " + user.Username + " promoted to admin",
		User:    UserSummary{Username: user.Username, Role: user.Role},
	})
}
