//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tair/product-catalog/internal/catalog/delivery/http"
	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the traced Mongo repository
func ProvideProductRepository(db *mongo.Database) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewMongoProductRepository(db))
}

// ProvideFanout provides the event fan-out over the given publisher
func ProvideFanout(pub events.Publisher) *events.Fanout {
	return events.NewFanout(pub)
}

// Command handler providers
func ProvideCreateProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo, fanout)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo, fanout)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo, fanout)
}

// Query handler providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideGetProductBySlugHandler(repo domain.ProductRepository) *query.GetProductBySlugHandler {
	return query.NewGetProductBySlugHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideFindProductsByIDsHandler(repo domain.ProductRepository) *query.FindProductsByIDsHandler {
	return query.NewFindProductsByIDsHandler(repo)
}

func ProvideFilterProductsHandler(repo domain.ProductRepository) *query.FilterProductsHandler {
	return query.NewFilterProductsHandler(repo)
}

func ProvideSearchProductsHandler(repo domain.ProductRepository) *query.SearchProductsHandler {
	return query.NewSearchProductsHandler(repo)
}

func ProvideListByCategoryHandler(repo domain.ProductRepository) *query.ListByCategoryHandler {
	return query.NewListByCategoryHandler(repo)
}

func ProvideListStaticPathsHandler(repo domain.ProductRepository) *query.ListStaticPathsHandler {
	return query.NewListStaticPathsHandler(repo)
}

func ProvideGetStatsHandler(repo domain.ProductRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var EventSet = wire.NewSet(
	ProvideFanout,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideGetProductBySlugHandler,
	ProvideListProductsHandler,
	ProvideFindProductsByIDsHandler,
	ProvideFilterProductsHandler,
	ProvideSearchProductsHandler,
	ProvideListByCategoryHandler,
	ProvideListStaticPathsHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	EventSet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *mongo.Database, pub events.Publisher) (*http.ProductHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewProductHandlerWithDI,
	)
	return nil, nil
}
