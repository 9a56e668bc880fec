package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a catalog product; the slug is derived from the name
// @Tags Products
// @Accept json
// @Produce json
// @Param request body object{name=string,product_code=string,price=number,sale=number,images=array,supplier_id=string,description=string,category_id=string,show=bool} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description Page through all non-deleted products
// @Tags Products
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Limit (default 10)"
// @Success 200 {object} object{success=bool,data=object{items=array,total=int,page=int,limit=int,pages=int}}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// SearchAndFilterProducts godoc
// @Summary Search and filter products
// @Description Keyword, category, and price-range filtered search with fixed page size
// @Tags Products
// @Produce json
// @Param page query int false "Page"
// @Param keyword query string false "Keyword (accent-insensitive)"
// @Param categories query string false "Comma-separated category ids"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param orderBy query string false "latest | sales | asc | desc"
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products/filter [get]
func (h *ProductHandler) SearchAndFilterProductsDoc() {}

// GetProduct godoc
// @Summary Get product by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProductDoc() {}

// UpdateProduct godoc
// @Summary Partially update a product
// @Description Replaces only the supplied fields; slug and id never change
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Soft-delete a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProductDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *ProductHandler) HealthCheckDoc() {}
