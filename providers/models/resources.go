package models

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Page is a website page as returned by the pages endpoints.
type Page struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	PageType        string          `json:"page_type"`
	IsPublished     bool            `json:"is_published"`
	IsLandingPage   bool            `json:"is_landing_page"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	LayoutJSON      json.RawMessage `json:"layout_json,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func (p Page) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(int64(1))),
	)
}

// KBEntry is a knowledge-base article.
type KBEntry struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (k KBEntry) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.ID, validation.Required, validation.Min(int64(1))),
	)
}

// Service is an entry of the company's service catalog.
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Category        string  `json:"category"`
	IsActive        bool    `json:"is_active"`
}

func (s Service) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.Price, validation.Min(0.0)),
	)
}

// Product is an entry of the company's product catalog.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"is_active"`
}

func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.Price, validation.Min(0.0)),
	)
}

// CompanyInfo describes the authenticated tenant and its website settings.
type CompanyInfo struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Slug            string         `json:"slug"`
	WebsiteSettings map[string]any `json:"website_settings"`
}

func (c CompanyInfo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.Name, validation.Required),
	)
}
