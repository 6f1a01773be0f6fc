package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// BucketHandler serves the bucket list pages.
type BucketHandler struct {
	logger  *slog.Logger
	buckets storage.BucketStorage
	render  *Renderer
}

// NewBucketHandler creates a new handler for bucket list items.
func NewBucketHandler(logger *slog.Logger, buckets storage.BucketStorage, render *Renderer) *BucketHandler {
	return &BucketHandler{
		logger:  logger,
		buckets: buckets,
		render:  render,
	}
}

// bucketView holds data for the bucket list pages.
type bucketView struct {
	User  *models.User
	Items []models.BucketItem
	Item  *models.BucketItem
}

// Page handles GET /bucket-list.
func (h *BucketHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	items, err := h.buckets.ListBucketItems(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list bucket items", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.Render(w, "bucket_list.html", bucketView{User: user, Items: items})
}

// AddPage handles GET /bucket-list/add.
func (h *BucketHandler) AddPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "bucket_add.html", bucketView{User: UserFromContext(r.Context())})
}

// Add handles POST /bucket-list.
func (h *BucketHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	item := parseBucketForm(r)
	item.UserID = user.ID
	item.CreatedAt = time.Now()

	if item.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.buckets.CreateBucketItem(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to create bucket item", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/bucket-list", http.StatusFound)
}

// EditPage handles GET /bucket-list/edit/{id}.
func (h *BucketHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	items, err := h.buckets.ListBucketItems(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list bucket items", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var item *models.BucketItem
	for i := range items {
		if items[i].ID == itemID {
			item = &items[i]
			break
		}
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	h.render.Render(w, "bucket_edit.html", bucketView{User: user, Items: items, Item: item})
}

// Update handles POST /bucket-list/update/{id}.
func (h *BucketHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	item := parseBucketForm(r)
	item.ID = itemID
	item.UserID = user.ID

	if err := h.buckets.UpdateBucketItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update bucket item", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/bucket-list", http.StatusFound)
}

// Complete handles POST /bucket-list/complete/{id}.
func (h *BucketHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.buckets.CompleteBucketItem(ctx, user.ID, itemID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to complete bucket item", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/bucket-list", http.StatusFound)
}

// Delete handles POST /bucket-list/delete/{id}.
func (h *BucketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.buckets.DeleteBucketItem(ctx, user.ID, itemID); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete bucket item", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/bucket-list", http.StatusFound)
}

func parseBucketForm(r *http.Request) *models.BucketItem {
	category := r.FormValue("category")
	if category == "" {
		category = "General"
	}
	priority := r.FormValue("priority")
	if priority == "" {
		priority = "Medium"
	}

	return &models.BucketItem{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    category,
		Price:       formFloat(r, "price"),
		Description: strings.TrimSpace(r.FormValue("description")),
		Priority:    priority,
		TargetDate:  strings.TrimSpace(r.FormValue("target_date")),
	}
}
