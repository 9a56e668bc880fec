package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
	"github.com/tair/product-catalog/pkg/logger"
)

// ProductHandler exposes the catalog operation surface over HTTP using the
// CQRS command/query handlers.
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getHandler         *query.GetProductHandler
	getBySlugHandler   *query.GetProductBySlugHandler
	listHandler        *query.ListProductsHandler
	findByIDsHandler   *query.FindProductsByIDsHandler
	filterHandler      *query.FilterProductsHandler
	searchHandler      *query.SearchProductsHandler
	byCategoryHandler  *query.ListByCategoryHandler
	staticPathsHandler *query.ListStaticPathsHandler
	statsHandler       *query.GetStatsHandler

	repo domain.ProductRepository
}

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of non-deleted products in the catalog",
		},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)
}

// NewProductHandler wires up all command and query handlers (manual DI)
func NewProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *ProductHandler {
	return NewProductHandlerWithDI(
		command.NewCreateProductHandler(repo, fanout),
		command.NewUpdateProductHandler(repo, fanout),
		command.NewDeleteProductHandler(repo, fanout),
		query.NewGetProductHandler(repo),
		query.NewGetProductBySlugHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewFindProductsByIDsHandler(repo),
		query.NewFilterProductsHandler(repo),
		query.NewSearchProductsHandler(repo),
		query.NewListByCategoryHandler(repo),
		query.NewListStaticPathsHandler(repo),
		query.NewGetStatsHandler(repo),
		repo,
	)
}

// NewProductHandlerWithDI builds the handler from pre-constructed
// dependencies. Used by Wire and by tests.
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	getBySlugHandler *query.GetProductBySlugHandler,
	listHandler *query.ListProductsHandler,
	findByIDsHandler *query.FindProductsByIDsHandler,
	filterHandler *query.FilterProductsHandler,
	searchHandler *query.SearchProductsHandler,
	byCategoryHandler *query.ListByCategoryHandler,
	staticPathsHandler *query.ListStaticPathsHandler,
	statsHandler *query.GetStatsHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	return &ProductHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		getHandler:         getHandler,
		getBySlugHandler:   getBySlugHandler,
		listHandler:        listHandler,
		findByIDsHandler:   findByIDsHandler,
		filterHandler:      filterHandler,
		searchHandler:      searchHandler,
		byCategoryHandler:  byCategoryHandler,
		staticPathsHandler: staticPathsHandler,
		statsHandler:       statsHandler,
		repo:               repo,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the catalog operation surface. Specific paths come
// before the {id} catch-all.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/filter", h.metricsMiddleware("/api/products/filter", h.SearchAndFilterProducts)).Methods("GET")
	router.HandleFunc("/api/products/search", h.metricsMiddleware("/api/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/static-paths", h.metricsMiddleware("/api/products/static-paths", h.ListStaticPaths)).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/category/{categoryId}", h.metricsMiddleware("/api/products/category/{categoryId}", h.GetProductsByCategory)).Methods("GET")
	router.HandleFunc("/api/products/slug/{slug}", h.metricsMiddleware("/api/products/slug/{slug}", h.GetProductBySlug)).Methods("GET")
	router.HandleFunc("/api/products/batch", h.metricsMiddleware("/api/products/batch", h.FindProductsByIDs)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")

	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.DeleteProduct)).Methods("DELETE")

	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

type createProductRequest struct {
	Name                      string                      `json:"name"`
	ProductCode               string                      `json:"product_code"`
	Price                     float64                     `json:"price"`
	Sale                      float64                     `json:"sale"`
	Images                    []string                    `json:"images"`
	SupplierID                string                      `json:"supplier_id"`
	Specifications            map[string]domain.SpecValue `json:"specifications"`
	Description               string                      `json:"description"`
	AcceptableExpiryThreshold *int                        `json:"acceptable_expiry_threshold"`
	CategoryID                string                      `json:"category_id"`
	Show                      *bool                       `json:"show"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.CreateProductCommand{
		Name:                      req.Name,
		ProductCode:               req.ProductCode,
		Price:                     req.Price,
		Sale:                      req.Sale,
		Images:                    req.Images,
		SupplierID:                req.SupplierID,
		Specifications:            req.Specifications,
		Description:               req.Description,
		AcceptableExpiryThreshold: req.AcceptableExpiryThreshold,
		CategoryID:                req.CategoryID,
		Show:                      req.Show,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	h.updateProductsMetric(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Page: page, Limit: limit})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// GetProductBySlug handles GET /api/products/slug/{slug}
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.getBySlugHandler.Handle(r.Context(), query.GetProductBySlugQuery{Slug: slug})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// FindProductsByIDs handles POST /api/products/batch
func (h *ProductHandler) FindProductsByIDs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	products, err := h.findByIDsHandler.Handle(r.Context(), query.FindProductsByIDsQuery{IDs: req.IDs})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to find products by ids")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// SearchAndFilterProducts handles GET /api/products/filter
func (h *ProductHandler) SearchAndFilterProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.filterHandler.Handle(r.Context(), query.FilterProductsQuery{Filter: parseFilter(r)})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to filter products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// SearchProducts handles GET /api/products/search
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	products, err := h.searchHandler.Handle(r.Context(), query.SearchProductsQuery{Keyword: keyword})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to search products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetProductsByCategory handles GET /api/products/category/{categoryId}
func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["categoryId"]

	products, err := h.byCategoryHandler.Handle(r.Context(), query.ListByCategoryQuery{CategoryID: categoryID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products by category")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ListStaticPaths handles GET /api/products/static-paths
func (h *ProductHandler) ListStaticPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.staticPathsHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list static paths")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: paths})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{ID: id, Patch: patch})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	confirmation, err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondError(w, err)
		return
	}

	h.updateProductsMetric(r)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: confirmation,
	})
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get stats")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// HealthCheck handles GET /health
func (h *ProductHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.repo.Count(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   domain.ErrUnavailable.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
}

// parseFilter reads the filter request from the query string. Unparseable
// numbers mean "no constraint".
func parseFilter(r *http.Request) domain.Filter {
	q := r.URL.Query()

	f := domain.Filter{
		Keyword: q.Get("keyword"),
		OrderBy: domain.SortOrder(q.Get("orderBy")),
	}

	if page, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil {
		f.Page = page
	}
	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				f.Categories = append(f.Categories, c)
			}
		}
	}
	if min, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil && min >= 0 {
		f.MinPrice = &min
	}
	if max, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil && max >= 0 {
		f.MaxPrice = &max
	}
	return f
}

func (h *ProductHandler) updateProductsMetric(r *http.Request) {
	if count, err := h.repo.Count(r.Context()); err == nil {
		totalProducts.Set(float64(count))
	}
}

// respondError maps domain errors onto HTTP status codes with the static
// per-kind message; store internals never leak.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidID):
		status = http.StatusBadRequest
		message = domain.ErrInvalidID.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		message = domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrCreationFailed):
		status = http.StatusInternalServerError
		message = domain.ErrCreationFailed.Error()
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = domain.ErrUnavailable.Error()
	}

	respondJSON(w, status, Response{Success: false, Error: message})
}

func respondJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}
