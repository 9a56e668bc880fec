package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

func TestCompileFilterDefaults(t *testing.T) {
	query, sort, page, limit := CompileFilter(domain.Filter{})

	if !reflect.DeepEqual(query, bson.M{"deleted_at": nil}) {
		t.Errorf("expected the bare soft-delete predicate, got %v", query)
	}
	if !reflect.DeepEqual(sort, bson.D{{Key: "created_at", Value: -1}}) {
		t.Errorf("expected newest-first default sort, got %v", sort)
	}
	if page != 1 {
		t.Errorf("expected page 1, got %d", page)
	}
	if limit != 12 {
		t.Errorf("expected fixed filter page size 12, got %d", limit)
	}
}

func TestCompileFilterPageFloored(t *testing.T) {
	for _, p := range []int64{-3, 0} {
		_, _, page, _ := CompileFilter(domain.Filter{Page: p})
		if page != 1 {
			t.Errorf("page %d: expected floor to 1, got %d", p, page)
		}
	}

	_, _, page, _ := CompileFilter(domain.Filter{Page: 7})
	if page != 7 {
		t.Errorf("expected page 7 preserved, got %d", page)
	}
}

func TestCompileSort(t *testing.T) {
	cases := []struct {
		order domain.SortOrder
		want  bson.D
	}{
		{domain.SortLatest, bson.D{{Key: "created_at", Value: -1}}},
		{domain.SortSales, bson.D{{Key: "sale", Value: -1}}},
		{domain.SortPriceAsc, bson.D{{Key: "price", Value: 1}}},
		{domain.SortPriceDesc, bson.D{{Key: "price", Value: -1}}},
		{domain.SortOrder("bogus"), bson.D{{Key: "created_at", Value: -1}}},
		{domain.SortOrder(""), bson.D{{Key: "created_at", Value: -1}}},
	}

	for _, tc := range cases {
		_, sort, _, _ := CompileFilter(domain.Filter{OrderBy: tc.order})
		if !reflect.DeepEqual(sort, tc.want) {
			t.Errorf("order %q: expected %v, got %v", tc.order, tc.want, sort)
		}
	}
}

func TestCompileFilterPriceRange(t *testing.T) {
	min, max := 5.0, 20.0

	cases := []struct {
		name     string
		min, max *float64
		want     interface{}
	}{
		{"both bounds", &min, &max, bson.M{"$gte": 5.0, "$lte": 20.0}},
		{"min only", &min, nil, bson.M{"$gte": 5.0}},
		{"max only", nil, &max, bson.M{"$lte": 20.0}},
		{"no bounds", nil, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, _, _, _ := CompileFilter(domain.Filter{MinPrice: tc.min, MaxPrice: tc.max})
			got, present := query["price"]
			if tc.want == nil {
				if present {
					t.Fatalf("expected no price constraint, got %v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCompileFilterCategories(t *testing.T) {
	query, _, _, _ := CompileFilter(domain.Filter{Categories: []string{"cat-a", "cat-b"}})

	want := bson.M{"$in": []string{"cat-a", "cat-b"}}
	if !reflect.DeepEqual(query["category_id"], want) {
		t.Errorf("expected %v, got %v", want, query["category_id"])
	}

	query, _, _, _ = CompileFilter(domain.Filter{})
	if _, present := query["category_id"]; present {
		t.Error("empty category list must add no constraint")
	}
}

func TestCompileFilterKeyword(t *testing.T) {
	query, _, _, _ := CompileFilter(domain.Filter{Keyword: "Café"})

	pattern, ok := query["slug"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected a regex on slug, got %T", query["slug"])
	}
	// Accents fold away so "Café" and "cafe" compile identically.
	if pattern.Pattern != "Cafe" {
		t.Errorf("expected folded pattern Cafe, got %q", pattern.Pattern)
	}
	if pattern.Options != "i" {
		t.Errorf("expected case-insensitive match, got options %q", pattern.Options)
	}
}

func TestCompileFilterKeywordQuoted(t *testing.T) {
	query, _, _, _ := CompileFilter(domain.Filter{Keyword: "a+b"})

	pattern := query["slug"].(primitive.Regex)
	if pattern.Pattern != `a\+b` {
		t.Errorf("regex metacharacters must be escaped, got %q", pattern.Pattern)
	}
}
