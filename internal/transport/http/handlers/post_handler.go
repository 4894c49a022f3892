package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
	"github.com/skyriting/skyriting/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
	log         *logrus.Logger
}

func NewPostHandler(postService *service.PostService, log *logrus.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("skip"))

	posts, err := h.postService.Feed(r.Context(), limit, offset)
	if err != nil {
		writeInternal(w, h.log, err, "feed")
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), principal, input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBanned):
			writeError(w, http.StatusForbidden, "BANNED", "Account is banned")
		case errors.Is(err, service.ErrNotVerified):
			writeError(w, http.StatusForbidden, "NOT_VERIFIED", "Only verified influencers can tag products")
		default:
			writeInternal(w, h.log, err, "create post")
		}
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	liked, err := h.postService.ToggleLike(r.Context(), principal, postID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBanned):
			writeError(w, http.StatusForbidden, "BANNED", "Account is banned")
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
		default:
			writeInternal(w, h.log, err, "like post")
		}
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "liked": liked})
}

func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid post ID")
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateComment(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	comment, err := h.postService.Comment(r.Context(), principal, postID, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrBanned):
			writeError(w, http.StatusForbidden, "BANNED", "Account is banned")
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
		default:
			writeInternal(w, h.log, err, "comment")
		}
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
