package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/bekzodart/storefront/internal/domain/errors"
	"github.com/bekzodart/storefront/internal/domain/model"
	"github.com/bekzodart/storefront/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testArtworks() []test.FakeArtwork {
	return []test.FakeArtwork{
		{ID: "a1", TitleEN: "Sunset", TitleRU: "Закат", Price: 250, ImageURL: "http://img/a1.jpg", Category: "landscape"},
		{ID: "a2", TitleEN: "Morning", Price: 350, ImageURL: "http://img/a2.jpg"},
		{ID: "a3", TitleEN: "Night Sky", Price: 500, ImageURL: "http://img/a3.jpg", Dimensions: "40x60"},
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", time.Second, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestListArtworksSendsOnlyNonDefaultParams(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()

	var gotSearch, gotSort, gotPrice string
	api.OnList(func(search, sort, priceRange string) {
		gotSearch, gotSort, gotPrice = search, sort, priceRange
	})

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	ctx := context.Background()

	if _, err := client.ListArtworks(ctx, model.DefaultQuery()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSearch != "" || gotSort != "" || gotPrice != "" {
		t.Fatalf("expected default query to omit params, got %q %q %q", gotSearch, gotSort, gotPrice)
	}

	query := model.CatalogQuery{Search: "sun", Sort: model.SortPriceLow, Price: model.PriceOver400}
	if _, err := client.ListArtworks(ctx, query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotSearch != "sun" || gotSort != "price-low" || gotPrice != "over-400" {
		t.Fatalf("unexpected params: %q %q %q", gotSearch, gotSort, gotPrice)
	}
}

func TestListArtworksDecodesEnvelope(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	artworks, err := client.ListArtworks(context.Background(), model.DefaultQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(artworks) != 3 {
		t.Fatalf("expected 3 artworks, got %d", len(artworks))
	}
	if artworks[0].ID != "a1" || artworks[0].Title.EN != "Sunset" || artworks[0].Title.RU != "Закат" {
		t.Fatalf("unexpected first artwork: %+v", artworks[0])
	}
	if artworks[2].Dimensions != "40x60" {
		t.Fatalf("expected dimensions to survive decoding, got %+v", artworks[2])
	}
}

func TestGetArtworkNotFound(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.GetArtwork(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	artwork, err := client.GetArtwork(context.Background(), "a2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artwork.ID != "a2" || artwork.Price != 350 {
		t.Fatalf("unexpected artwork: %+v", artwork)
	}
}

func TestCreateOrderDeliversPayload(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	draft := model.OrderDraft{
		FullName: "Jane Doe",
		Phone:    "+998901234567",
		Email:    "jane@example.com",
		Items: []model.LineItem{
			{ArtworkID: "a1", Quantity: 1},
			{ArtworkID: "a2", Quantity: 1},
		},
	}

	confirmation, err := client.CreateOrder(context.Background(), draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation.OrderID != "ord-1" {
		t.Fatalf("unexpected confirmation: %+v", confirmation)
	}

	orders := api.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected one received order, got %d", len(orders))
	}
	got := orders[0]
	if got.FullName != "Jane Doe" || got.PhoneNumber != "+998901234567" {
		t.Fatalf("unexpected buyer fields: %+v", got)
	}
	if got.Email == nil || *got.Email != "jane@example.com" {
		t.Fatalf("expected email to be set, got %+v", got.Email)
	}
	if len(got.Items) != 2 || got.Items[0].ArtworkID != "a1" || got.Items[1].ArtworkID != "a2" {
		t.Fatalf("expected line items in cart order, got %+v", got.Items)
	}
	if got.IdempotencyKey == "" {
		t.Fatal("expected idempotency key header")
	}
}

func TestCreateOrderOmitsEmptyEmail(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	draft := model.OrderDraft{
		FullName: "Jane Doe",
		Phone:    "+998901234567",
		Items:    []model.LineItem{{ArtworkID: "a1", Quantity: 1}},
	}
	if _, err := client.CreateOrder(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders := api.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected one received order, got %d", len(orders))
	}
	if orders[0].Email != nil {
		t.Fatalf("expected null email, got %v", *orders[0].Email)
	}
}

func TestCreateOrderRejection(t *testing.T) {
	api := test.NewFakeAPI(testArtworks())
	defer api.Close()
	api.SetOrderStatus(http.StatusBadGateway)

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	draft := model.OrderDraft{
		FullName: "Jane Doe",
		Phone:    "+998901234567",
		Items:    []model.LineItem{{ArtworkID: "a1", Quantity: 1}},
	}

	_, err = client.CreateOrder(context.Background(), draft)
	var rejection RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Status != http.StatusBadGateway {
		t.Fatalf("unexpected rejection status %d", rejection.Status)
	}
}

func TestCreateOrderRequiresItems(t *testing.T) {
	client, err := NewHTTPClient("http://unused.local", time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), model.OrderDraft{FullName: "Jane"}); !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestListComments(t *testing.T) {
	api := test.NewFakeAPI(nil)
	defer api.Close()
	api.SetComments([]gin.H{
		{"id": "c1", "author": "Aziza", "text": "Beautiful work", "rating": 5},
	})

	client, err := NewHTTPClient(api.URL(), time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	comments, err := client.ListComments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].Author != "Aziza" || comments[0].Rating != 5 {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}
