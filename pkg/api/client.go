// Package api is the REST client for the store backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/money"
	"github.com/marshallshelly/storekiosk/pkg/session"
)

// PlaceholderImageURL is shown whenever a product has no usable image.
const PlaceholderImageURL = "https://via.placeholder.com/150"

var (
	// ErrUnauthorized is returned on a 401/403 response.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrBackendUnavailable is returned when the backend cannot be reached.
	ErrBackendUnavailable = errors.New("backend unreachable")
)

// StatusError is a non-2xx backend response.
type StatusError struct {
	Endpoint string
	Code     int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the store backend. All authenticated calls attach the
// session token; every call runs under the configured timeout.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given backend origin.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(req, "login", &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w", ErrUnauthorized)
	}
	return out.Token, nil
}

// ProductFilter narrows the product list fetch by category.
type ProductFilter struct {
	MainCategory int64
	SubCategory  int64
}

// Products fetches the product list, optionally filtered by category.
func (c *Client) Products(ctx context.Context, sess *session.Session, filter ProductFilter) ([]catalog.Product, error) {
	u := c.baseURL + "/api/products/"
	params := url.Values{}
	if filter.MainCategory != 0 {
		params.Set("main_category", strconv.FormatInt(filter.MainCategory, 10))
	}
	if filter.SubCategory != 0 {
		params.Set("sub_category", strconv.FormatInt(filter.SubCategory, 10))
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := c.authedRequest(ctx, sess, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := c.do(req, "products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MainCategories fetches the main category list.
func (c *Client) MainCategories(ctx context.Context, sess *session.Session) ([]catalog.MainCategory, error) {
	req, err := c.authedRequest(ctx, sess, http.MethodGet, c.baseURL+"/api/main-categories/", nil)
	if err != nil {
		return nil, err
	}

	var categories []catalog.MainCategory
	if err := c.do(req, "main-categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SubCategories fetches the sub category list.
func (c *Client) SubCategories(ctx context.Context, sess *session.Session) ([]catalog.SubCategory, error) {
	req, err := c.authedRequest(ctx, sess, http.MethodGet, c.baseURL+"/api/sub-categories/", nil)
	if err != nil {
		return nil, err
	}

	var categories []catalog.SubCategory
	if err := c.do(req, "sub-categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// OrderItem is one line of the order/print payload.
type OrderItem struct {
	Product  OrderProduct   `json:"product"`
	Quantity int            `json:"quantity"`
	Price    money.Centavos `json:"price"`
}

// OrderProduct is the product snapshot embedded in an order item.
type OrderProduct struct {
	ID    int64          `json:"product_id"`
	Name  string         `json:"product_name"`
	Price money.Centavos `json:"product_price"`
}

// Order is the order/print request body.
type Order struct {
	Reference string         `json:"reference"`
	Items     []OrderItem    `json:"items"`
	Total     money.Centavos `json:"total"`
}

// PrintOrder submits the order for printing and returns the backend's order
// identifier.
func (c *Client) PrintOrder(ctx context.Context, sess *session.Session, order Order) (string, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return "", err
	}

	req, err := c.authedRequest(ctx, sess, http.MethodPost, c.baseURL+"/api/print-receipt/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		OrderID string `json:"order_id"`
	}
	if err := c.do(req, "print-receipt", &out); err != nil {
		return "", err
	}
	if !out.Success {
		if out.Message == "" {
			out.Message = "printing failed"
		}
		return "", fmt.Errorf("print-receipt: %s", out.Message)
	}
	return out.OrderID, nil
}

// SubmitFeedback posts a 1-5 rating for an order.
func (c *Client) SubmitFeedback(ctx context.Context, sess *session.Session, orderID string, rating int) error {
	body, _ := json.Marshal(map[string]any{
		"order_id": orderID,
		"rating":   rating,
	})

	req, err := c.authedRequest(ctx, sess, http.MethodPost, c.baseURL+"/api/feedback/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(req, "feedback", &out); err != nil {
		return err
	}
	if !out.Success {
		return errors.New("feedback: backend reported failure")
	}
	return nil
}

// Ping checks backend reachability. It needs no authentication.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping: %w", ErrBackendUnavailable)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("ping: %w", ErrBackendUnavailable)
	}
	return nil
}

// ImageURL resolves a product's relative image path against the backend
// origin. Missing paths fall back to the generic placeholder.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return PlaceholderImageURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) authedRequest(ctx context.Context, sess *session.Session, method, url string, body io.Reader) (*http.Request, error) {
	if sess == nil || sess.Token == "" {
		return nil, session.ErrNoToken
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+sess.Token)
	return req, nil
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, ErrBackendUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", endpoint, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
