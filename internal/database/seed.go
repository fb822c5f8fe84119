package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// seedCategory describes one development fixture category and its pages.
type seedCategory struct {
	name  string
	likes int
	pages []seedPage
}

type seedPage struct {
	title string
	url   string
	views int
}

// devFixtures is the development data set: a handful of categories with
// distinct like counts (so the home page ordering is visible) and pages
// with distinct view counts (so the per-category ranking is visible).
var devFixtures = []seedCategory{
	{
		name:  "Python",
		likes: 64,
		pages: []seedPage{
			{"Official Python Tutorial", "http://docs.python.org/tutorial/", 12},
			{"How to Think like a Computer Scientist", "http://www.greenteapress.com/thinkpython/", 55},
			{"Learn Python in 10 Minutes", "http://www.korokithakis.net/tutorials/python/", 31},
		},
	},
	{
		name:  "Django",
		likes: 32,
		pages: []seedPage{
			{"Official Django Tutorial", "https://docs.djangoproject.com/en/tutorial/", 32},
			{"Django Rocks", "http://www.djangorocks.com/", 16},
			{"How to Tango with Django", "http://www.tangowithdjango.com/", 109},
		},
	},
	{
		name:  "Other Frameworks",
		likes: 16,
		pages: []seedPage{
			{"Bottle", "http://bottlepy.org/docs/dev/", 14},
			{"Flask", "http://flask.pocoo.org", 19},
		},
	},
}

// Seed populates the database with initial development data: the fixture
// categories/pages above and a default user. No-op if data already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, cat := range devFixtures {
		var catID string
		err := db.QueryRow(`
			INSERT INTO categories (name, likes) VALUES ($1, $2) RETURNING id
		`, cat.name, cat.likes).Scan(&catID)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", cat.name, err)
		}

		for _, p := range cat.pages {
			_, err := db.Exec(`
				INSERT INTO pages (category_id, title, url, views) VALUES ($1, $2, $3, $4)
			`, catID, p.title, p.url, p.views)
			if err != nil {
				return fmt.Errorf("seed insert page %q: %w", p.title, err)
			}
		}
	}

	// Default development user.
	hash, err := bcrypt.GenerateFromPassword([]byte("shelf"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
	`, "shelf", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	slog.Info("database seeded with fixture categories and default user",
		"categories", len(devFixtures),
		"username", "shelf",
		"password", "shelf",
	)

	return nil
}
