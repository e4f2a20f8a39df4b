package sync_engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/meysamhadeli/solid/apperr"
	"github.com/meysamhadeli/solid/providers/models"
)

type call struct {
	Method string
	ID     int64
	Fields map[string]any
}

// stubClient is an in-memory IResourceClient that records every call.
type stubClient struct {
	mu    sync.Mutex
	calls []call

	pages       []models.Page
	pageDetails map[int64]*models.Page
	kb          []models.KBEntry
	services    []models.Service
	products    []models.Product
	company     *models.CompanyInfo

	listErrors   map[string]error
	updateErrors map[int64]error
	nextID       int64

	// onCall runs after a call is recorded.
	onCall func(method string)
}

func newStubClient() *stubClient {
	return &stubClient{
		pageDetails:  map[int64]*models.Page{},
		listErrors:   map[string]error{},
		updateErrors: map[int64]error{},
		nextID:       100,
		company:      &models.CompanyInfo{ID: 12, Name: "Acme", WebsiteSettings: map[string]any{}},
	}
}

func (s *stubClient) record(method string, id int64, fields map[string]any) {
	s.mu.Lock()
	s.calls = append(s.calls, call{Method: method, ID: id, Fields: fields})
	hook := s.onCall
	s.mu.Unlock()
	if hook != nil {
		hook(method)
	}
}

func (s *stubClient) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *stubClient) ListPages(ctx context.Context) ([]models.Page, error) {
	s.record("ListPages", 0, nil)
	if err := s.listErrors["pages"]; err != nil {
		return nil, err
	}
	return s.pages, nil
}

func (s *stubClient) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	s.record("GetPage", id, nil)
	page, ok := s.pageDetails[id]
	if !ok {
		return nil, &apperr.RemoteError{Status: 404, Message: fmt.Sprintf("page %d not found", id)}
	}
	return page, nil
}

func (s *stubClient) CreatePage(ctx context.Context, fields map[string]any) (*models.Page, error) {
	s.record("CreatePage", 0, fields)
	if err := s.listErrors["create"]; err != nil {
		return nil, err
	}
	slug, _ := fields["slug"].(string)
	return &models.Page{ID: s.allocateID(), Slug: slug}, nil
}

func (s *stubClient) UpdatePage(ctx context.Context, id int64, fields map[string]any) error {
	s.record("UpdatePage", id, fields)
	return s.updateErrors[id]
}

func (s *stubClient) SearchKB(ctx context.Context, query string, limit int) ([]models.KBEntry, error) {
	s.record("SearchKB", int64(limit), nil)
	if err := s.listErrors["kb"]; err != nil {
		return nil, err
	}
	return s.kb, nil
}

func (s *stubClient) CreateKB(ctx context.Context, fields map[string]any) (*models.KBEntry, error) {
	s.record("CreateKB", 0, fields)
	title, _ := fields["title"].(string)
	return &models.KBEntry{ID: s.allocateID(), Title: title}, nil
}

func (s *stubClient) UpdateKB(ctx context.Context, id int64, fields map[string]any) error {
	s.record("UpdateKB", id, fields)
	return s.updateErrors[id]
}

func (s *stubClient) ListServices(ctx context.Context) ([]models.Service, error) {
	s.record("ListServices", 0, nil)
	if err := s.listErrors["services"]; err != nil {
		return nil, err
	}
	return s.services, nil
}

func (s *stubClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.record("ListProducts", 0, nil)
	if err := s.listErrors["products"]; err != nil {
		return nil, err
	}
	return s.products, nil
}

func (s *stubClient) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	s.record("GetCompanyInfo", 0, nil)
	if err := s.listErrors["settings"]; err != nil {
		return nil, err
	}
	return s.company, nil
}

func (s *stubClient) UpdateCompanySettings(ctx context.Context, fields map[string]any) error {
	s.record("UpdateCompanySettings", 0, fields)
	return s.listErrors["update_settings"]
}

func (s *stubClient) allocateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	return id
}

func methods(calls []call) []string {
	names := make([]string, 0, len(calls))
	for _, c := range calls {
		names = append(names, c.Method)
	}
	return names
}
