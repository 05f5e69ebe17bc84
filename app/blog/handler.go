package blog

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/auth"
	"github.com/duckcreek/farmstore/models"
)

type PostProvider interface {
	GetPublishedPosts() ([]models.BlogPost, error)
	GetPublishedBySlug(slug string) (*models.BlogPost, error)
	GetAllPosts() ([]models.BlogPost, error)
	GetByID(id uint) (*models.BlogPost, error)
	CreatePost(post *models.BlogPost) error
	UpdatePost(id uint, updates map[string]any) (*models.BlogPost, error)
	DeletePost(id uint) error
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type BlogHandler struct {
	repo PostProvider
}

func NewBlogHandler(r PostProvider) *BlogHandler {
	return &BlogHandler{
		repo: r,
	}
}

// HandleList serves published posts, newest first.
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo.GetPublishedPosts()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	api.WriteJSON(w, http.StatusOK, posts)
}

// HandleGetBySlug serves one published post. Drafts 404 like missing posts.
func (h *BlogHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.repo.GetPublishedBySlug(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			api.WriteError(w, http.StatusNotFound, "blog post not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, post)
}

// HandleListAll serves every post including drafts for the admin table.
func (h *BlogHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo.GetAllPosts()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	api.WriteJSON(w, http.StatusOK, posts)
}

type postInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Excerpt   *string `json:"excerpt"`
	ImageURL  *string `json:"imageUrl"`
	Slug      *string `json:"slug"`
	Published *bool   `json:"published"`
}

func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	if input.Title == nil || *input.Title == "" {
		fields["title"] = "title is required"
	}
	if input.Content == nil || *input.Content == "" {
		fields["content"] = "content is required"
	}
	if input.Slug == nil || *input.Slug == "" {
		fields["slug"] = "slug is required"
	} else if !slugPattern.MatchString(*input.Slug) {
		fields["slug"] = "slug must contain only lowercase letters, digits and hyphens"
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}

	post := &models.BlogPost{
		Title:   *input.Title,
		Content: *input.Content,
		Slug:    *input.Slug,
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.ImageURL != nil {
		post.ImageURL = *input.ImageURL
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if identity, ok := auth.IdentityFrom(r.Context()); ok {
		post.AuthorID = identity.UserID
	}

	if err := h.repo.CreatePost(post); err != nil {
		if errors.Is(err, models.ErrDuplicateSlug) {
			api.WriteError(w, http.StatusConflict, "slug already in use")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, post)
}

// HandleUpdate applies a partial update; only the provided fields change.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var input postInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	updates := map[string]any{}
	if input.Title != nil {
		if *input.Title == "" {
			fields["title"] = "title must not be empty"
		} else {
			updates["title"] = *input.Title
		}
	}
	if input.Content != nil {
		if *input.Content == "" {
			fields["content"] = "content must not be empty"
		} else {
			updates["content"] = *input.Content
		}
	}
	if input.Slug != nil {
		if !slugPattern.MatchString(*input.Slug) {
			fields["slug"] = "slug must contain only lowercase letters, digits and hyphens"
		} else {
			updates["slug"] = *input.Slug
		}
	}
	if input.Excerpt != nil {
		updates["excerpt"] = *input.Excerpt
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Published != nil {
		updates["published"] = *input.Published
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}
	if len(updates) == 0 {
		api.WriteError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	post, err := h.repo.UpdatePost(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPostNotFound):
			api.WriteError(w, http.StatusNotFound, "blog post not found")
		case errors.Is(err, models.ErrDuplicateSlug):
			api.WriteError(w, http.StatusConflict, "slug already in use")
		default:
			api.WriteInternalError(w, err)
		}
		return
	}
	api.WriteJSON(w, http.StatusOK, post)
}

// HandleDelete removes a post permanently.
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeletePost(id); err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			api.WriteError(w, http.StatusNotFound, "blog post not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return uint(id), true
}
