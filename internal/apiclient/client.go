package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
)

// Client is the typed consumer of the admin API, used by in-process tooling
// and as the reference for how the SPA talks to the backend. Reads are
// idempotent and may run concurrently; no ordering between them is assumed.
type Client struct {
	BaseURL    string
	Token      string // bearer credential for authenticated routes
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{BaseURL: baseURL, Token: token, HTTPClient: http.DefaultClient}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("GET %s: status %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encode %s payload", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if resp.StatusCode != http.StatusCreated {
		// surfaced verbatim so form code can map field hints from the message
		return errors.Errorf("POST %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return unmarshal(respBody, out)
	}
	return nil
}

// CreateOrder issues the single mutating call that persists a composed order.
func (c *Client) CreateOrder(ctx context.Context, req services.CreateOrderRequest) (models.Order, error) {
	var created models.Order
	if err := c.post(ctx, "/api/orders", req, &created); err != nil {
		return models.Order{}, err
	}
	return created, nil
}

// CreateTrip issues the single atomic trip-creation call.
func (c *Client) CreateTrip(ctx context.Context, req services.CreateTripRequest) (models.Trip, error) {
	var created models.Trip
	if err := c.post(ctx, "/api/trips", req, &created); err != nil {
		return models.Trip{}, err
	}
	return created, nil
}

// ListFilter narrows list endpoints; zero values mean "no filter".
type ListFilter struct {
	BranchID uint
	IsActive *bool
	Branch   string // branch code, for fleet lists
}

func (f ListFilter) values() url.Values {
	q := url.Values{}
	if f.BranchID != 0 {
		q.Set("branch_id", fmt.Sprint(f.BranchID))
	}
	if f.IsActive != nil {
		q.Set("is_active", fmt.Sprint(*f.IsActive))
	}
	if f.Branch != "" {
		q.Set("branch", f.Branch)
	}
	return q
}

func (c *Client) ListBranches(ctx context.Context) (ListPage[models.Branch], error) {
	body, err := c.get(ctx, "/api/branches", nil)
	if err != nil {
		return ListPage[models.Branch]{}, err
	}
	return DecodeList[models.Branch](body)
}

func (c *Client) ListTrucks(ctx context.Context, f ListFilter) (ListPage[models.Truck], error) {
	body, err := c.get(ctx, "/api/trucks", f.values())
	if err != nil {
		return ListPage[models.Truck]{}, err
	}
	return DecodeList[models.Truck](body)
}

func (c *Client) ListDrivers(ctx context.Context, f ListFilter) (ListPage[models.Driver], error) {
	body, err := c.get(ctx, "/api/drivers", f.values())
	if err != nil {
		return ListPage[models.Driver]{}, err
	}
	return DecodeList[models.Driver](body)
}

func (c *Client) ListCustomers(ctx context.Context, f ListFilter) (ListPage[models.Customer], error) {
	body, err := c.get(ctx, "/api/customers", f.values())
	if err != nil {
		return ListPage[models.Customer]{}, err
	}
	return DecodeList[models.Customer](body)
}

// Document is a delivery-proof entry as served by the documents endpoint.
type Document struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	DownloadURL string `json:"download_url"`
}

type documentList struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
}

// DeliveryProofs fetches the delivery-proof documents of an order.
func (c *Client) DeliveryProofs(ctx context.Context, orderID uint) ([]Document, int, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/orders/%d/documents/delivery-proof", orderID), nil)
	if err != nil {
		return nil, 0, err
	}
	var out documentList
	if err := unmarshal(body, &out); err != nil {
		return nil, 0, err
	}
	return out.Documents, out.Total, nil
}
