package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// FakeArtwork mirrors the flat JSON shape the catalog API serves.
type FakeArtwork struct {
	ID            string  `json:"id"`
	TitleEN       string  `json:"title_en"`
	TitleRU       string  `json:"title_ru"`
	TitleUZ       string  `json:"title_uz"`
	DescriptionEN string  `json:"description_en"`
	DescriptionRU string  `json:"description_ru"`
	DescriptionUZ string  `json:"description_uz"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"imageUrl"`
	Category      string  `json:"category,omitempty"`
	Dimensions    string  `json:"dimensions,omitempty"`
}

// ReceivedOrder records one POST /order body as delivered to the fake API.
type ReceivedOrder struct {
	FullName       string  `json:"fullName"`
	PhoneNumber    string  `json:"phoneNumber"`
	Address        string  `json:"address"`
	Email          *string `json:"email"`
	IdempotencyKey string  `json:"-"`
	Items          []struct {
		ArtworkID string `json:"artworkId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

// FakeAPI serves the catalog/order REST surface for tests. Responses are
// gzip-compressed and wrapped in the {"data": ...} envelope like the
// production edge.
type FakeAPI struct {
	server *httptest.Server

	mu          sync.Mutex
	artworks    []FakeArtwork
	comments    []gin.H
	orders      []ReceivedOrder
	orderStatus int
	listHook    func(search, sort, priceRange string)
}

// NewFakeAPI starts an in-process catalog/order API backed by the given artworks.
func NewFakeAPI(artworks []FakeArtwork) *FakeAPI {
	gin.SetMode(gin.TestMode)

	api := &FakeAPI{
		artworks:    artworks,
		orderStatus: http.StatusCreated,
	}

	engine := gin.New()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/artwork", api.listArtworks)
	engine.GET("/artwork/:id", api.getArtwork)
	engine.POST("/order", api.createOrder)
	engine.GET("/comment", api.listComments)

	api.server = httptest.NewServer(engine)
	return api
}

// URL returns the base address the client under test should point at.
func (a *FakeAPI) URL() string {
	return a.server.URL
}

// Close shuts the server down.
func (a *FakeAPI) Close() {
	a.server.Close()
}

// SetOrderStatus makes subsequent POST /order calls answer with the status.
func (a *FakeAPI) SetOrderStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.orderStatus = status
}

// SetComments installs testimonial entries served by GET /comment.
func (a *FakeAPI) SetComments(comments []gin.H) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.comments = comments
}

// OnList registers a hook invoked with the raw query params of each list call.
func (a *FakeAPI) OnList(fn func(search, sort, priceRange string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listHook = fn
}

// Orders returns every order body received so far.
func (a *FakeAPI) Orders() []ReceivedOrder {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ReceivedOrder, len(a.orders))
	copy(out, a.orders)
	return out
}

func (a *FakeAPI) listArtworks(c *gin.Context) {
	search := c.Query("search")
	sort := c.Query("sort")
	priceRange := c.Query("priceRange")

	a.mu.Lock()
	hook := a.listHook
	source := make([]FakeArtwork, len(a.artworks))
	copy(source, a.artworks)
	a.mu.Unlock()

	if hook != nil {
		hook(search, sort, priceRange)
	}

	matched := make([]FakeArtwork, 0, len(source))
	for _, art := range source {
		if search != "" && !strings.Contains(strings.ToLower(art.TitleEN), strings.ToLower(search)) {
			continue
		}
		matched = append(matched, art)
	}

	c.JSON(http.StatusOK, gin.H{"data": matched})
}

func (a *FakeAPI) getArtwork(c *gin.Context) {
	id := c.Param("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, art := range a.artworks {
		if art.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": art})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "artwork not found"})
}

func (a *FakeAPI) createOrder(c *gin.Context) {
	var order ReceivedOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order.IdempotencyKey = c.GetHeader("Idempotency-Key")

	a.mu.Lock()
	status := a.orderStatus
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		a.orders = append(a.orders, order)
	}
	a.mu.Unlock()

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		c.JSON(status, gin.H{"error": "order rejected"})
		return
	}
	c.JSON(status, gin.H{"data": gin.H{"orderId": "ord-1", "status": "created"}})
}

func (a *FakeAPI) listComments(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	comments := a.comments
	if comments == nil {
		comments = []gin.H{}
	}
	c.JSON(http.StatusOK, gin.H{"data": comments})
}
