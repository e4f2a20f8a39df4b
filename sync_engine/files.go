package sync_engine

import (
	"encoding/json"

	"github.com/meysamhadeli/solid/providers/models"
)

// editablePageFields are the page keys push sends; anything else in a page
// file (such as _id) stays local.
var editablePageFields = []string{
	"title",
	"slug",
	"page_type",
	"is_published",
	"is_landing_page",
	"meta_title",
	"meta_description",
	"layout_json",
}

type pageFile struct {
	ID              int64           `json:"_id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	PageType        string          `json:"page_type"`
	IsPublished     bool            `json:"is_published"`
	IsLandingPage   bool            `json:"is_landing_page"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	LayoutJSON      json.RawMessage `json:"layout_json"`
}

type serviceFile struct {
	ID              int64   `json:"_id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Category        string  `json:"category"`
	IsActive        bool    `json:"is_active"`
}

type productFile struct {
	ID          int64   `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"is_active"`
}

type settingsFile struct {
	CompanyID       int64          `json:"company_id"`
	CompanyName     string         `json:"company_name"`
	WebsiteSettings map[string]any `json:"website_settings"`
}

func encodeFile(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func pageToFile(page *models.Page) pageFile {
	layout := page.LayoutJSON
	if len(layout) == 0 {
		layout = json.RawMessage("null")
	}
	return pageFile{
		ID:              page.ID,
		Title:           page.Title,
		Slug:            page.Slug,
		PageType:        page.PageType,
		IsPublished:     page.IsPublished,
		IsLandingPage:   page.IsLandingPage,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		LayoutJSON:      layout,
	}
}

func serviceToFile(service models.Service) serviceFile {
	return serviceFile{
		ID:              service.ID,
		Name:            service.Name,
		Slug:            service.Slug,
		Description:     service.Description,
		Price:           service.Price,
		DurationMinutes: service.DurationMinutes,
		Category:        service.Category,
		IsActive:        service.IsActive,
	}
}

func productToFile(product models.Product) productFile {
	return productFile{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		SKU:         product.SKU,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		IsActive:    product.IsActive,
	}
}

// pagePatch keeps only the editable keys present in a page file. Keys set
// to null are sent as null.
func pagePatch(data map[string]any) map[string]any {
	patch := make(map[string]any, len(editablePageFields))
	for _, key := range editablePageFields {
		if value, ok := data[key]; ok {
			patch[key] = value
		}
	}
	return patch
}
