package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/amolina-dev/postapi/internal/store"
	"github.com/amolina-dev/postapi/internal/token"
)

type Handler struct {
	Auth  *AuthHandler
	Posts *PostHandler
}

func NewHandler(st store.Store, issuer *token.Issuer, log *logrus.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(st, issuer, log),
		Posts: NewPostHandler(st, log),
	}
}
