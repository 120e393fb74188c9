package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/bekzodart/storefront/internal/domain/errors"
	"github.com/bekzodart/storefront/internal/domain/model"
)

// RejectionError represents a non-2xx answer from the catalog/order API.
type RejectionError struct {
	Status int
	Body   string
}

func (e RejectionError) Error() string {
	return fmt.Sprintf("catalog API rejected request: status %d", e.Status)
}

// Client exposes operations consumed from the remote catalog/order API.
type Client interface {
	ListArtworks(ctx context.Context, query model.CatalogQuery) ([]model.Artwork, error)
	GetArtwork(ctx context.Context, id string) (*model.Artwork, error)
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.OrderConfirmation, error)
	ListComments(ctx context.Context) ([]model.Comment, error)
}

// HTTPClient implements Client via the REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// artworkPayload mirrors the flat JSON shape of catalog responses.
type artworkPayload struct {
	ID            string    `json:"id"`
	TitleEN       string    `json:"title_en"`
	TitleRU       string    `json:"title_ru"`
	TitleUZ       string    `json:"title_uz"`
	DescriptionEN string    `json:"description_en"`
	DescriptionRU string    `json:"description_ru"`
	DescriptionUZ string    `json:"description_uz"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"imageUrl"`
	Category      string    `json:"category,omitempty"`
	Dimensions    string    `json:"dimensions,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type commentPayload struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type orderItemPayload struct {
	ArtworkID string `json:"artworkId"`
	Quantity  int    `json:"quantity"`
}

type orderPayload struct {
	FullName    string             `json:"fullName"`
	PhoneNumber string             `json:"phoneNumber"`
	Address     string             `json:"address"`
	Email       *string            `json:"email"`
	Items       []orderItemPayload `json:"items"`
}

type confirmationPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// NewHTTPClient creates a catalog client with the given request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ListArtworks fetches the catalog filtered by the query. Default query
// values are omitted from the request, matching what the storefront sends.
func (c *HTTPClient) ListArtworks(ctx context.Context, query model.CatalogQuery) ([]model.Artwork, error) {
	endpoint := c.endpoint("/artwork")

	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Sort != "" && query.Sort != model.SortNewest {
		params.Set("sort", string(query.Sort))
	}
	if query.Price != "" && query.Price != model.PriceAll {
		params.Set("priceRange", string(query.Price))
	}
	endpoint.RawQuery = params.Encode()

	var payload []artworkPayload
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}

	artworks := make([]model.Artwork, len(payload))
	for i, p := range payload {
		artworks[i] = p.toModel()
	}
	return artworks, nil
}

// GetArtwork fetches a single artwork by id.
func (c *HTTPClient) GetArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	endpoint := c.endpoint("/artwork/", id)

	var payload artworkPayload
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	artwork := payload.toModel()
	return &artwork, nil
}

// CreateOrder submits an order draft. Each call carries a fresh idempotency
// key so a retried attempt is distinguishable from a duplicate delivery.
func (c *HTTPClient) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.OrderConfirmation, error) {
	if len(draft.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	payload := orderPayload{
		FullName:    draft.FullName,
		PhoneNumber: draft.Phone,
		Address:     draft.Address,
		Items:       make([]orderItemPayload, len(draft.Items)),
	}
	if draft.Email != "" {
		email := draft.Email
		payload.Email = &email
	}
	for i, item := range draft.Items {
		payload.Items[i] = orderItemPayload{ArtworkID: item.ArtworkID, Quantity: item.Quantity}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	endpoint := c.endpoint("/order")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("order submission rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return nil, RejectionError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var confirmation confirmationPayload
	if err := decodeEnvelope(resp.Body, &confirmation); err != nil {
		return nil, err
	}
	return &model.OrderConfirmation{OrderID: confirmation.OrderID, Status: confirmation.Status}, nil
}

// ListComments fetches testimonial entries.
func (c *HTTPClient) ListComments(ctx context.Context) ([]model.Comment, error) {
	endpoint := c.endpoint("/comment")

	var payload []commentPayload
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}

	comments := make([]model.Comment, len(payload))
	for i, p := range payload {
		comments[i] = model.Comment{ID: p.ID, Author: p.Author, Text: p.Text, Rating: p.Rating, CreatedAt: p.CreatedAt}
	}
	return comments, nil
}

func (c *HTTPClient) endpoint(parts ...string) url.URL {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, parts...)...)
	return endpoint
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeEnvelope(resp.Body, out)
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return RejectionError{Status: resp.StatusCode, Body: string(body)}
	}
}

// decodeEnvelope unwraps the {"data": ...} envelope the API wraps every
// response in.
func decodeEnvelope(r io.Reader, out any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Data == nil {
		// Some endpoints answer without the envelope.
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (p artworkPayload) toModel() model.Artwork {
	return model.Artwork{
		ID:          p.ID,
		Title:       model.LocalizedText{EN: p.TitleEN, RU: p.TitleRU, UZ: p.TitleUZ},
		Description: model.LocalizedText{EN: p.DescriptionEN, RU: p.DescriptionRU, UZ: p.DescriptionUZ},
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Dimensions:  p.Dimensions,
		CreatedAt:   p.CreatedAt,
	}
}
