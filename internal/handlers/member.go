// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"linkshelf/internal/cache"
	"linkshelf/internal/directory"
	"linkshelf/internal/middleware"
	"linkshelf/internal/models"
	"linkshelf/internal/render"
	"linkshelf/internal/storage"
	"linkshelf/internal/store"
)

// totpIssuer names this app inside authenticator apps.
const totpIssuer = "Linkshelf"

// Member groups the handlers behind RequireAuth: adding categories and
// pages, liking, and profile management. storageClient and suggestCache
// may be nil.
type Member struct {
	renderer      *render.Renderer
	dir           *directory.Directory
	ranker        *directory.Ranker
	categoryStore *store.CategoryStore
	pageStore     *store.PageStore
	userStore     *store.UserStore
	storageClient *storage.Client
	suggestCache  *cache.SuggestCache
}

// NewMember creates a new Member handler group.
func NewMember(renderer *render.Renderer, dir *directory.Directory, ranker *directory.Ranker, categoryStore *store.CategoryStore, pageStore *store.PageStore, userStore *store.UserStore, storageClient *storage.Client, suggestCache *cache.SuggestCache) *Member {
	return &Member{
		renderer:      renderer,
		dir:           dir,
		ranker:        ranker,
		categoryStore: categoryStore,
		pageStore:     pageStore,
		userStore:     userStore,
		storageClient: storageClient,
		suggestCache:  suggestCache,
	}
}

// AddCategoryPage renders the add-category form.
func (m *Member) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	m.renderer.Page(w, r, "add_category", &render.PageData{
		Title: "Add Category",
		Data:  map[string]any{"Errors": FieldErrors{}},
	})
}

// AddCategorySubmit validates and creates a category, then redirects to
// its new page. Duplicate names (case-insensitive) are a field error.
func (m *Member) AddCategorySubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))

	formData := func(errs FieldErrors) map[string]any {
		return map[string]any{"Name": name, "Description": description, "Errors": errs}
	}

	errs := validateCategoryForm(name, description)
	if len(errs) > 0 {
		m.renderer.Page(w, r, "add_category", &render.PageData{Title: "Add Category", Data: formData(errs)})
		return
	}

	existing, err := m.dir.FindExact(name)
	if err != nil {
		slog.Error("add category lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		errs["name"] = "That category already exists."
		m.renderer.Page(w, r, "add_category", &render.PageData{Title: "Add Category", Data: formData(errs)})
		return
	}

	var descPtr *string
	if description != "" {
		descPtr = &description
	}
	cat, err := m.categoryStore.Create(name, descPtr)
	if err != nil {
		slog.Error("add category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if m.suggestCache != nil {
		m.suggestCache.InvalidateAll(r.Context())
	}

	slog.Info("category created", "category_id", cat.ID, "name", cat.Name)
	http.Redirect(w, r, "/category/"+cat.Slug, http.StatusSeeOther)
}

// findCategoryBySlug resolves the chi slug param, writing the not-found
// placeholder page when the category is missing. Returns nil after
// responding in that case.
func (m *Member) findCategoryBySlug(w http.ResponseWriter, r *http.Request) *models.Category {
	slugToken := chi.URLParam(r, "slug")
	cat, err := m.dir.FindBySlug(slugToken)
	if err != nil {
		slog.Error("category lookup failed", "slug", slugToken, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if cat == nil {
		m.renderer.Page(w, r, "category", &render.PageData{Title: "Unknown Category", Data: map[string]any{}})
		return nil
	}
	return cat
}

// AddPagePage renders the add-page form for a category.
func (m *Member) AddPagePage(w http.ResponseWriter, r *http.Request) {
	cat := m.findCategoryBySlug(w, r)
	if cat == nil {
		return
	}

	m.renderer.Page(w, r, "add_page", &render.PageData{
		Title: "Add Page",
		Data:  map[string]any{"Category": cat, "Errors": FieldErrors{}},
	})
}

// AddPageSubmit validates and creates a page in a category.
func (m *Member) AddPageSubmit(w http.ResponseWriter, r *http.Request) {
	cat := m.findCategoryBySlug(w, r)
	if cat == nil {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	pageURL := normalizeURL(r.FormValue("url"))

	errs := validatePageForm(title, pageURL)
	if len(errs) > 0 {
		m.renderer.Page(w, r, "add_page", &render.PageData{
			Title: "Add Page",
			Data:  map[string]any{"Category": cat, "Title": title, "URL": pageURL, "Errors": errs},
		})
		return
	}

	page, err := m.pageStore.Create(cat.ID, title, pageURL)
	if err != nil {
		slog.Error("add page failed", "category_id", cat.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("page created", "page_id", page.ID, "category_id", cat.ID)
	http.Redirect(w, r, "/category/"+cat.Slug, http.StatusSeeOther)
}

// AutoAddPage performs a get-or-create for a page and returns the
// category's refreshed ranked page list as a fragment.
func (m *Member) AutoAddPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	catID, err := uuid.Parse(q.Get("cat_id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(q.Get("title"))
	pageURL := normalizeURL(q.Get("url"))
	if errs := validatePageForm(title, pageURL); len(errs) > 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cat, err := m.categoryStore.FindByID(catID)
	if err != nil {
		slog.Error("auto add category lookup failed", "category_id", catID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cat == nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	if _, err := m.pageStore.GetOrCreate(catID, title, pageURL); err != nil {
		slog.Error("auto add page failed", "category_id", catID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pages, err := m.ranker.PagesFor(catID)
	if err != nil {
		slog.Error("auto add page list failed", "category_id", catID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	m.renderer.Fragment(w, "page_list", pages)
}

// Like increments a category's like counter and returns the new count as
// plain text for the like button script.
func (m *Member) Like(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("category_id"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	likes, err := m.dir.Like(id)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		slog.Error("like failed", "category_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if m.suggestCache != nil {
		m.suggestCache.InvalidateAll(r.Context())
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%d", likes)
}

// Restricted is a trivial members-only page.
func (m *Member) Restricted(w http.ResponseWriter, r *http.Request) {
	m.renderer.Page(w, r, "restricted", &render.PageData{
		Title: "Restricted",
		Data:  map[string]any{},
	})
}

// profileData assembles the profile template data for a user.
func (m *Member) profileData(userID uuid.UUID) (map[string]any, error) {
	user, err := m.userStore.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("profile user %s missing", userID)
	}

	data := map[string]any{
		"Errors":         FieldErrors{},
		"TOTPEnabled":    user.TOTPEnabled,
		"UploadsEnabled": m.storageClient != nil,
	}
	if user.Website != nil {
		data["Website"] = *user.Website
	}
	if user.PictureURL != nil {
		data["PictureURL"] = *user.PictureURL
	}
	return data, nil
}

// ProfilePage renders the profile form for the signed-in user.
func (m *Member) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	data, err := m.profileData(sess.UserID)
	if err != nil {
		slog.Error("profile load failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	m.renderer.Page(w, r, "profile", &render.PageData{Title: "Profile", Data: data})
}

// ProfileSubmit updates the website and, when storage is configured, the
// profile picture.
func (m *Member) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	website := normalizeURL(r.FormValue("website"))
	if errs := validateProfileForm(website); len(errs) > 0 {
		data, err := m.profileData(sess.UserID)
		if err != nil {
			slog.Error("profile load failed", "user_id", sess.UserID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data["Errors"] = errs
		data["Website"] = website
		m.renderer.Page(w, r, "profile", &render.PageData{Title: "Profile", Data: data})
		return
	}

	// Always update the website (an empty value clears it); the picture
	// only changes when a new upload succeeds.
	var picturePtr *string
	websitePtr := &website
	if file, _, err := r.FormFile("picture"); err == nil && m.storageClient != nil {
		defer file.Close()
		if pictureURL, err := uploadAvatar(r.Context(), m.storageClient, sess.UserID, file); err != nil {
			slog.Warn("avatar upload failed", "user_id", sess.UserID, "error", err)
		} else {
			picturePtr = &pictureURL
		}
	}

	if err := m.userStore.UpdateProfile(sess.UserID, websitePtr, picturePtr); err != nil {
		slog.Error("profile update failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data, err := m.profileData(sess.UserID)
	if err != nil {
		slog.Error("profile reload failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data["Saved"] = true
	m.renderer.Page(w, r, "profile", &render.PageData{Title: "Profile", Data: data})
}

// TOTPSetup generates a fresh secret for the user and renders the
// enrollment QR code. The secret is stored but not enabled until verified.
func (m *Member) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Username,
	})
	if err != nil {
		slog.Error("totp generate failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := m.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("totp secret store failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("totp qr encode failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data, err := m.profileData(sess.UserID)
	if err != nil {
		slog.Error("profile load failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data["QRCode"] = base64.StdEncoding.EncodeToString(png)
	m.renderer.Page(w, r, "profile", &render.PageData{Title: "Profile", Data: data})
}

// TOTPVerify checks the first code against the stored secret and enables
// two-factor authentication on success.
func (m *Member) TOTPVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	user, err := m.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("totp verify lookup failed", "user_id", sess.UserID, "error", err)
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		data, err := m.profileData(sess.UserID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data["Errors"] = FieldErrors{"code": "That code didn't match. Try again from setup."}
		m.renderer.Page(w, r, "profile", &render.PageData{Title: "Profile", Data: data})
		return
	}

	if err := m.userStore.EnableTOTP(sess.UserID); err != nil {
		slog.Error("totp enable failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("two-factor enabled", "user_id", sess.UserID)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// TOTPDisable switches two-factor authentication off.
func (m *Member) TOTPDisable(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	if err := m.userStore.DisableTOTP(sess.UserID); err != nil {
		slog.Error("totp disable failed", "user_id", sess.UserID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("two-factor disabled", "user_id", sess.UserID)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
