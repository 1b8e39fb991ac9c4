package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/amolina-dev/postapi/internal/middleware"
	"github.com/amolina-dev/postapi/internal/models"
	"github.com/amolina-dev/postapi/internal/store"
	"github.com/amolina-dev/postapi/internal/token"
	"github.com/amolina-dev/postapi/internal/utils"
)

type AuthHandler struct {
	Store  store.Store
	Issuer *token.Issuer
	Log    *logrus.Logger
}

func NewAuthHandler(st store.Store, issuer *token.Issuer, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{Store: st, Issuer: issuer, Log: log}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountResp is the envelope the user endpoints speak: a res flag plus a
// message, and on successful login the bearer token.
type accountResp struct {
	Res     bool   `json:"res"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	errs := map[string][]string{}
	if req.Name == "" {
		errs["name"] = append(errs["name"], "name is required")
	}
	if req.Email == "" {
		errs["email"] = append(errs["email"], "email is required")
	}
	if req.Password == "" {
		errs["password"] = append(errs["password"], "password is required")
	}
	if len(errs) > 0 {
		utils.ValidationError(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_, err = h.Store.CreateUser(r.Context(), req.Name, req.Email, string(hash))
	if errors.Is(err, store.ErrEmailTaken) {
		utils.JSON(w, http.StatusConflict, accountResp{Res: false, Message: "email already taken"})
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("register: create user")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, accountResp{Res: true, Message: "user created"})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		// credential failures are reported as 200 with res:false; the
		// client contract branches on the flag, not the status
		utils.JSON(w, http.StatusOK, accountResp{Res: false, Message: "wrong account or password"})
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("login: user lookup")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		utils.JSON(w, http.StatusOK, accountResp{Res: false, Message: "wrong account or password"})
		return
	}

	signed, claims, err := h.Issuer.Issue(u.ID)
	if err != nil {
		h.Log.WithError(err).Error("login: issue token")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rec := models.AccessToken{
		ID:        claims.ID,
		UserID:    u.ID,
		CreatedAt: time.Now(),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := h.Store.CreateToken(r.Context(), rec); err != nil {
		h.Log.WithError(err).Error("login: persist token")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Store.TouchUser(r.Context(), u.ID); err != nil {
		h.Log.WithError(err).Warn("login: touch user")
	}

	utils.JSON(w, http.StatusOK, accountResp{Res: true, Token: signed, Message: "welcome"})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	// full sign-out: every active token of the user, not just the one
	// presented
	if err := h.Store.RevokeUserTokens(r.Context(), userID); err != nil {
		h.Log.WithError(err).Error("logout: revoke tokens")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.Store.TouchUser(r.Context(), userID); err != nil {
		h.Log.WithError(err).Warn("logout: touch user")
	}

	utils.JSON(w, http.StatusOK, accountResp{Res: true, Message: "goodbye"})
}
