// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"linkshelf/internal/middleware"
	"linkshelf/internal/render"
	"linkshelf/internal/session"
	"linkshelf/internal/storage"
	"linkshelf/internal/store"
)

// Auth groups registration, login, two-factor verification, and logout.
// storageClient may be nil when S3 is not configured; registration then
// runs without picture uploads.
type Auth struct {
	renderer      *render.Renderer
	sessions      *session.Store
	userStore     *store.UserStore
	storageClient *storage.Client
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore, storageClient *storage.Client) *Auth {
	return &Auth{
		renderer:      renderer,
		sessions:      sessions,
		userStore:     userStore,
		storageClient: storageClient,
	}
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data: map[string]any{
			"Errors":         FieldErrors{},
			"UploadsEnabled": a.storageClient != nil,
		},
	})
}

// RegisterSubmit processes the registration form, creates the user, and
// signs them in.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	website := normalizeURL(r.FormValue("website"))

	formData := func(errs FieldErrors) map[string]any {
		return map[string]any{
			"Username":       username,
			"Website":        website,
			"Errors":         errs,
			"UploadsEnabled": a.storageClient != nil,
		}
	}

	errs := validateRegisterForm(username, password)
	for field, msg := range validateProfileForm(website) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		a.renderer.Page(w, r, "register", &render.PageData{Title: "Register", Data: formData(errs)})
		return
	}

	existing, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		errs["username"] = "That username is already taken."
		a.renderer.Page(w, r, "register", &render.PageData{Title: "Register", Data: formData(errs)})
		return
	}

	user, err := a.userStore.Create(username, password)
	if err != nil {
		slog.Error("register create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var websitePtr, picturePtr *string
	if website != "" {
		websitePtr = &website
	}
	if file, _, err := r.FormFile("picture"); err == nil && a.storageClient != nil {
		defer file.Close()
		if pictureURL, err := uploadAvatar(r.Context(), a.storageClient, user.ID, file); err != nil {
			slog.Warn("register avatar upload failed", "user_id", user.ID, "error", err)
		} else {
			picturePtr = &pictureURL
		}
	}
	if websitePtr != nil || picturePtr != nil {
		if err := a.userStore.UpdateProfile(user.ID, websitePtr, picturePtr); err != nil {
			slog.Error("register profile update failed", "user_id", user.ID, "error", err)
		}
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Username:  user.Username,
		TwoFADone: true,
	})
	if err != nil {
		slog.Error("register session create failed", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Log in",
		Data:  map[string]any{},
	})
}

// LoginSubmit processes the login form. Bad credentials and a disabled
// account produce distinct messages. Users with two-factor enabled get a
// half-open session and are sent to the verification step.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	fail := func(data map[string]any) {
		data["Username"] = username
		a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in", Data: data})
	}

	user, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, password) {
		fail(map[string]any{"BadDetails": true})
		return
	}
	if !user.Active {
		fail(map[string]any{"DisabledAccount": true})
		return
	}

	data := &session.Data{
		UserID:    user.ID,
		Username:  user.Username,
		TwoFADone: !user.Needs2FA(),
	}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("login session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !data.TwoFADone {
		http.Redirect(w, r, "/login/verify", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// VerifyPage renders the two-factor code form for half-open sessions.
func (a *Auth) VerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.UserID == uuid.Nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if sess.TwoFADone {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login_verify", &render.PageData{
		Title: "Verify",
		Data:  map[string]any{},
	})
}

// VerifySubmit checks the submitted TOTP code and completes the login.
func (a *Auth) VerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || sess.UserID == uuid.Nil || sess.TwoFADone {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("verify user lookup failed", "user_id", sess.UserID, "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		a.renderer.Page(w, r, "login_verify", &render.PageData{
			Title: "Verify",
			Data:  map[string]any{"BadCode": true},
		})
		return
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("verify session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("two-factor verified", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and returns to the home page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("logout failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
