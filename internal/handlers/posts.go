package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/amolina-dev/postapi/internal/models"
	"github.com/amolina-dev/postapi/internal/store"
	"github.com/amolina-dev/postapi/internal/utils"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

type PostHandler struct {
	Store store.Posts
	Log   *logrus.Logger
}

func NewPostHandler(st store.Posts, log *logrus.Logger) *PostHandler {
	return &PostHandler{Store: st, Log: log}
}

type postReq struct {
	Title string `json:"title"`
}

type postListResp struct {
	Data []models.Post `json:"data"`
}

// validateTitle returns the field-keyed errors for an empty title, or nil.
func validateTitle(title string) map[string][]string {
	if strings.TrimSpace(title) == "" {
		return map[string][]string{"title": {"title is required"}}
	}
	return nil
}

// postID parses the {id} route param. A non-numeric id behaves like an
// unknown one: 404.
func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// ---------------------- LIST ----------------------

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	posts, err := h.Store.ListPosts(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		h.Log.WithError(err).Error("posts: list")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, postListResp{Data: posts})
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if errs := validateTitle(req.Title); errs != nil {
		utils.ValidationError(w, errs)
		return
	}

	post, err := h.Store.CreatePost(r.Context(), req.Title)
	if err != nil {
		h.Log.WithError(err).Error("posts: create")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}

	post, err := h.Store.PostByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("posts: get")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	// validation runs before the lookup, so an empty title on an unknown
	// id still reports 422
	if errs := validateTitle(req.Title); errs != nil {
		utils.ValidationError(w, errs)
		return
	}

	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}

	post, err := h.Store.UpdatePostTitle(r.Context(), id, req.Title)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("posts: update")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}

	err := h.Store.DeletePost(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		h.Log.WithError(err).Error("posts: delete")
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
