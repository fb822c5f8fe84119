// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/url"
	"strings"
)

// Field length limits, matching the database column expectations.
const (
	maxNameLen        = 128
	maxTitleLen       = 128
	maxURLLen         = 200
	maxUsernameLen    = 64
	maxDescriptionLen = 2000
	minPasswordLen    = 8
)

// FieldErrors maps form field names to validation messages. An empty map
// means the form is valid.
type FieldErrors map[string]string

// validateCategoryForm checks the add-category form.
func validateCategoryForm(name, description string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = "Please enter a category name."
	} else if len(name) > maxNameLen {
		errs["name"] = "Category names are limited to 128 characters."
	}
	if len(description) > maxDescriptionLen {
		errs["description"] = "Descriptions are limited to 2000 characters."
	}
	return errs
}

// validatePageForm checks the add-page form. The URL must already be
// normalized with normalizeURL before validation.
func validatePageForm(title, pageURL string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = "Please enter a page title."
	} else if len(title) > maxTitleLen {
		errs["title"] = "Titles are limited to 128 characters."
	}
	if strings.TrimSpace(pageURL) == "" {
		errs["url"] = "Please enter a URL."
	} else if len(pageURL) > maxURLLen {
		errs["url"] = "URLs are limited to 200 characters."
	} else if !validURL(pageURL) {
		errs["url"] = "Please enter a valid http or https URL."
	}
	return errs
}

// validateRegisterForm checks the registration form.
func validateRegisterForm(username, password string) FieldErrors {
	errs := FieldErrors{}
	username = strings.TrimSpace(username)
	if username == "" {
		errs["username"] = "Please choose a username."
	} else if len(username) > maxUsernameLen {
		errs["username"] = "Usernames are limited to 64 characters."
	} else if strings.ContainsAny(username, " \t") {
		errs["username"] = "Usernames cannot contain spaces."
	}
	if len(password) < minPasswordLen {
		errs["password"] = "Passwords need at least 8 characters."
	}
	return errs
}

// validateProfileForm checks the profile form. The website field is
// optional but must be a valid URL when present.
func validateProfileForm(website string) FieldErrors {
	errs := FieldErrors{}
	if website != "" {
		if len(website) > maxURLLen {
			errs["website"] = "URLs are limited to 200 characters."
		} else if !validURL(website) {
			errs["website"] = "Please enter a valid http or https URL."
		}
	}
	return errs
}

// normalizeURL prepends http:// to bare host URLs so users can type
// "www.example.com" into URL fields.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "http://" + raw
	}
	return raw
}

// validURL reports whether raw parses as an absolute http(s) URL.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
