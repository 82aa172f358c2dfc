package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"p9e.in/fabtrack/middleware"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginReq true "Username and password"
// @Success 200 {object} loginResp
// @Failure 401 {object} errorResponse
// @Router /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	cred, err := h.svc.Credentials.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	token, err := h.tokens.GenerateToken(cred.Username, cred.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.log.Info("User logged in", zap.String("username", cred.Username))
	h.writeJSON(w, http.StatusOK, loginResp{
		Token: token,
		User:  userPayload{ID: cred.ID, Username: cred.Username, Role: cred.Role},
	})
}

// Me returns the caller's identity from the token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"username": middleware.GetUsername(r),
		"role":     middleware.GetRole(r),
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Param body body changePasswordReq true "Current and new password"
// @Success 204
// @Failure 401 {object} errorResponse
// @Security BearerAuth
// @Router /api/v1/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordReq
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	err := h.svc.Credentials.ChangePassword(r.Context(), middleware.GetUsername(r), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
