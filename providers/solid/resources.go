package solid

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meysamhadeli/solid/providers/models"
)

func (client *SolidClient) ListPages(ctx context.Context) ([]models.Page, error) {
	raw, err := client.do(ctx, http.MethodGet, "/pages", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Page]("pages", raw)
}

func (client *SolidClient) GetPage(ctx context.Context, id int64) (*models.Page, error) {
	raw, err := client.do(ctx, http.MethodGet, fmt.Sprintf("/pages/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Page]("page", raw)
}

func (client *SolidClient) CreatePage(ctx context.Context, fields map[string]any) (*models.Page, error) {
	raw, err := client.do(ctx, http.MethodPost, "/pages", nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Page]("page", raw)
}

// UpdatePage applies a sparse patch. Any 2xx answer is success, whatever
// its body.
func (client *SolidClient) UpdatePage(ctx context.Context, id int64, fields map[string]any) error {
	_, err := client.do(ctx, http.MethodPut, fmt.Sprintf("/pages/%d", id), nil, fields)
	return err
}

func (client *SolidClient) SearchKB(ctx context.Context, query string, limit int) ([]models.KBEntry, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	raw, err := client.do(ctx, http.MethodGet, "/kb/search", params, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.KBEntry]("kb", raw)
}

func (client *SolidClient) CreateKB(ctx context.Context, fields map[string]any) (*models.KBEntry, error) {
	raw, err := client.do(ctx, http.MethodPost, "/kb", nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.KBEntry]("kb entry", raw)
}

func (client *SolidClient) UpdateKB(ctx context.Context, id int64, fields map[string]any) error {
	_, err := client.do(ctx, http.MethodPut, fmt.Sprintf("/kb/%d", id), nil, fields)
	return err
}

func (client *SolidClient) ListServices(ctx context.Context) ([]models.Service, error) {
	raw, err := client.do(ctx, http.MethodGet, "/services", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Service]("services", raw)
}

func (client *SolidClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := client.do(ctx, http.MethodGet, "/products", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Product]("products", raw)
}

func (client *SolidClient) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	raw, err := client.do(ctx, http.MethodGet, "/company", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.CompanyInfo]("company", raw)
}

func (client *SolidClient) UpdateCompanySettings(ctx context.Context, fields map[string]any) error {
	_, err := client.do(ctx, http.MethodPut, "/company/settings", nil, fields)
	return err
}
