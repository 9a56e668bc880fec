package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingProductRepository wraps a ProductRepository with OpenTelemetry
// spans around every store round trip.
type TracingProductRepository struct {
	inner domain.ProductRepository
}

func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

func (r *TracingProductRepository) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *TracingProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	ctx, span := r.span(ctx, "repository.Insert",
		attribute.String("product.name", product.Name),
		attribute.String("product.code", product.ProductCode),
		attribute.String("product.slug", product.Slug),
	)
	err := r.inner.Insert(ctx, product)
	if err == nil {
		span.SetAttributes(attribute.String("product.id", product.ID.Hex()))
	}
	finish(span, err)
	return err
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	ctx, span := r.span(ctx, "repository.FindByID",
		attribute.String("product.id", id.Hex()),
	)
	product, err := r.inner.FindByID(ctx, id)
	finish(span, err)
	return product, err
}

func (r *TracingProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	ctx, span := r.span(ctx, "repository.FindBySlug",
		attribute.String("product.slug", slug),
	)
	product, err := r.inner.FindBySlug(ctx, slug)
	finish(span, err)
	return product, err
}

func (r *TracingProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	ctx, span := r.span(ctx, "repository.FindByIDs",
		attribute.Int("product.id_count", len(ids)),
	)
	products, err := r.inner.FindByIDs(ctx, ids)
	if err == nil {
		span.SetAttributes(attribute.Int("product.found", len(products)))
	}
	finish(span, err)
	return products, err
}

func (r *TracingProductRepository) FindByCategory(ctx context.Context, categoryID string, limit int64) ([]domain.Product, error) {
	ctx, span := r.span(ctx, "repository.FindByCategory",
		attribute.String("product.category_id", categoryID),
		attribute.Int64("limit", limit),
	)
	products, err := r.inner.FindByCategory(ctx, categoryID, limit)
	finish(span, err)
	return products, err
}

func (r *TracingProductRepository) List(ctx context.Context, page, limit int64) (*domain.Page, error) {
	ctx, span := r.span(ctx, "repository.List",
		attribute.Int64("page", page),
		attribute.Int64("limit", limit),
	)
	result, err := r.inner.List(ctx, page, limit)
	if err == nil {
		span.SetAttributes(attribute.Int64("total", result.Total))
	}
	finish(span, err)
	return result, err
}

func (r *TracingProductRepository) SearchAndFilter(ctx context.Context, filter domain.Filter) (*domain.Page, error) {
	ctx, span := r.span(ctx, "repository.SearchAndFilter",
		attribute.Int64("page", filter.Page),
		attribute.String("order_by", string(filter.OrderBy)),
		attribute.String("keyword", filter.Keyword),
		attribute.Int("category_count", len(filter.Categories)),
	)
	result, err := r.inner.SearchAndFilter(ctx, filter)
	if err == nil {
		span.SetAttributes(attribute.Int64("total", result.Total))
	}
	finish(span, err)
	return result, err
}

func (r *TracingProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	ctx, span := r.span(ctx, "repository.Search",
		attribute.String("keyword", keyword),
	)
	products, err := r.inner.Search(ctx, keyword)
	finish(span, err)
	return products, err
}

func (r *TracingProductRepository) ListSlugs(ctx context.Context) ([]string, error) {
	ctx, span := r.span(ctx, "repository.ListSlugs")
	slugs, err := r.inner.ListSlugs(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("slug_count", len(slugs)))
	}
	finish(span, err)
	return slugs, err
}

func (r *TracingProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	ctx, span := r.span(ctx, "repository.UpdateByID",
		attribute.String("product.id", id.Hex()),
	)
	product, err := r.inner.UpdateByID(ctx, id, patch)
	finish(span, err)
	return product, err
}

func (r *TracingProductRepository) SoftDeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	ctx, span := r.span(ctx, "repository.SoftDeleteByID",
		attribute.String("product.id", id.Hex()),
	)
	product, err := r.inner.SoftDeleteByID(ctx, id)
	finish(span, err)
	return product, err
}

func (r *TracingProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := r.span(ctx, "repository.Count")
	count, err := r.inner.Count(ctx)
	finish(span, err)
	return count, err
}

func (r *TracingProductRepository) CountVisible(ctx context.Context) (int64, error) {
	ctx, span := r.span(ctx, "repository.CountVisible")
	count, err := r.inner.CountVisible(ctx)
	finish(span, err)
	return count, err
}
