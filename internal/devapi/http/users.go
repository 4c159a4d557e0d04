package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
	"github.com/aussiebroadwan/storefront/internal/devapi/service"
	"github.com/aussiebroadwan/storefront/pkg/apiclient"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const maxBodyBytes = 4 << 10

type UsersHandler struct {
	UserService  *service.UserService
	RolesService *service.RolesService
}

// HandleRegister creates a customer account.
//
//	@Summary		Register a new account
//	@Description	Creates a customer account and returns a session token for it.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apiclient.RegisterRequest	true	"name and password"
//	@Success		201		{object}	apiclient.TokenResponse		"session token"
//	@Failure		400		{object}	apiclient.ErrorResponse		"malformed body or invalid input"
//	@Failure		409		{object}	apiclient.ErrorResponse		"name already registered"
//	@Failure		429		{object}	apiclient.ErrorResponse		"rate limited"
//	@Router			/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apiclient.RegisterRequest
	if err := httpx.DecodeJSON(r, maxBodyBytes, &req); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}

	token, user, err := h.UserService.Register(ctx, req.Name, req.Password)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		ErrInvalidRequest.withDescription(verr.Error()).WriteError(w)
		return
	case errors.Is(err, service.ErrNameTaken):
		ErrNameTaken.WriteError(w)
		return
	case err != nil:
		log.Error("failed to register user", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	log.Info("user registered", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusCreated, apiclient.TokenResponse{Token: token})
}

// HandleLogin exchanges a name and password for a session token.
//
//	@Summary		Log in
//	@Description	Verifies a name and password and returns a session token.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apiclient.LoginRequest		true	"name and password"
//	@Success		200		{object}	apiclient.TokenResponse		"session token"
//	@Failure		400		{object}	apiclient.ErrorResponse		"malformed body"
//	@Failure		401		{object}	apiclient.ErrorResponse		"invalid credentials"
//	@Failure		429		{object}	apiclient.ErrorResponse		"rate limited"
//	@Router			/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apiclient.LoginRequest
	if err := httpx.DecodeJSON(r, maxBodyBytes, &req); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}

	token, user, err := h.UserService.Authenticate(ctx, req.Name, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		log.Warn("login rejected", "name", req.Name)
		ErrInvalidCredentials.WriteError(w)
		return
	case err != nil:
		log.Error("failed to authenticate user", "err", err)
		ErrServerError.WriteError(w)
		return
	}

	log.Info("user logged in", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, apiclient.TokenResponse{Token: token})
}

// HandleLoginToken resolves the bearer token to its user.
//
//	@Summary		Current user
//	@Description	Returns the user the bearer token was issued to, with its role id.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	apiclient.LoginTokenResponse	"user id, name and RoleId"
//	@Failure		401	{object}	apiclient.ErrorResponse			"missing, invalid or stale token"
//	@Failure		500	{object}	apiclient.ErrorResponse			"internal server error"
//	@Router			/users/loginToken [get].
func (h *UsersHandler) HandleLoginToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		// The account was removed after the token was issued.
		log.Warn("token refers to missing user", "user_id", userID)
		ErrInvalidToken.WriteError(w)
		return
	case err != nil:
		log.Error("failed to load user", "user_id", userID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	payload := toPayload(user)
	httpx.WriteJSON(w, http.StatusOK, apiclient.LoginTokenResponse{User: &payload})
}

// HandleCheckAdmin reports whether a role id is an admin role.
//
//	@Summary		Check admin role
//	@Description	Reports whether the given role id grants admin access. Unknown roles are not admin.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apiclient.CheckAdminRequest		true	"role to check"
//	@Success		200		{object}	apiclient.CheckAdminResponse	"isAdmin flag"
//	@Failure		400		{object}	apiclient.ErrorResponse			"malformed body"
//	@Failure		401		{object}	apiclient.ErrorResponse			"missing or invalid token"
//	@Router			/users/check-admin [post].
func (h *UsersHandler) HandleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req apiclient.CheckAdminRequest
	if err := httpx.DecodeJSON(r, maxBodyBytes, &req); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}

	isAdmin, err := h.RolesService.IsAdmin(ctx, req.RoleID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to resolve role", "role_id", req.RoleID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apiclient.CheckAdminResponse{IsAdmin: isAdmin})
}

func toPayload(u domain.User) apiclient.UserPayload {
	return apiclient.UserPayload{ID: u.ID, Name: u.Name, RoleID: u.RoleID}
}
