package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/pkg/textutil"
)

// Page sizes are fixed constants: filtered search is not caller-controlled,
// plain listing defaults to listPageSize but accepts a caller limit.
const (
	filterPageSize = 12
	listPageSize   = 10
)

// priceSortDirections maps the price orderings to Mongo sort directions.
// The direction flags were inconsistent across revisions of this service;
// the table keeps the mapping in one testable place. Documented intent:
// asc is ascending.
var priceSortDirections = map[domain.SortOrder]int{
	domain.SortPriceAsc:  1,
	domain.SortPriceDesc: -1,
}

// CompileFilter translates a filter request into a query predicate, sort
// order, and pagination window for the store's paginated scan. It performs
// no I/O and never fails: absent or invalid numeric inputs mean "no
// constraint".
func CompileFilter(f domain.Filter) (query bson.M, sort bson.D, page, limit int64) {
	query = notDeleted()

	if len(f.Categories) > 0 {
		query["category_id"] = bson.M{"$in": f.Categories}
	}

	if priceRange := compilePriceRange(f.MinPrice, f.MaxPrice); priceRange != nil {
		query["price"] = priceRange
	}

	if f.Keyword != "" {
		query["slug"] = keywordPattern(f.Keyword)
	}

	sort = compileSort(f.OrderBy)

	page = f.Page
	if page < 1 {
		page = 1
	}
	return query, sort, page, filterPageSize
}

func compileSort(order domain.SortOrder) bson.D {
	switch order {
	case domain.SortSales:
		return bson.D{{Key: "sale", Value: -1}}
	case domain.SortPriceAsc, domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: priceSortDirections[order]}}
	default:
		// latest, and the fallback for anything unrecognized
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

func compilePriceRange(min, max *float64) bson.M {
	switch {
	case min != nil && max != nil:
		return bson.M{"$gte": *min, "$lte": *max}
	case min != nil:
		return bson.M{"$gte": *min}
	case max != nil:
		return bson.M{"$lte": *max}
	default:
		return nil
	}
}

// keywordPattern builds a case- and diacritic-insensitive substring match
// for the normalized keyword. Stored slugs are already lower-case ASCII.
func keywordPattern(keyword string) primitive.Regex {
	normalized := regexp.QuoteMeta(textutil.StripDiacritics(keyword))
	return primitive.Regex{Pattern: normalized, Options: "i"}
}

// notDeleted is the base predicate shared by every read: soft-deleted
// documents are invisible to this core.
func notDeleted() bson.M {
	return bson.M{"deleted_at": nil}
}
