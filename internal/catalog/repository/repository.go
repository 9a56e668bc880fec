package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

const productCollectionName = "products"

// MongoProductRepository is the document-store adapter for the catalog.
// Soft-deleted documents are retained for audit but excluded from every
// read issued here.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection(productCollectionName)}
}

// EnsureIndexes creates the unique indexes backing the slug and
// product_code invariants. Uniqueness is scoped to non-deleted documents.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	notYetDeleted := bson.M{"deleted_at": bson.M{"$exists": false}}
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(notYetDeleted),
		},
		{
			Keys:    bson.D{{Key: "product_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(notYetDeleted),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	product.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProductRepository) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	for k, v := range notDeleted() {
		filter[k] = v
	}

	var product domain.Product
	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	filter := notDeleted()
	filter["_id"] = bson.M{"$in": ids}
	return r.findMany(ctx, filter, nil)
}

func (r *MongoProductRepository) FindByCategory(ctx context.Context, categoryID string, limit int64) ([]domain.Product, error) {
	filter := notDeleted()
	filter["category_id"] = categoryID
	filter["show"] = true

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.findMany(ctx, filter, opts)
}

func (r *MongoProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	filter := notDeleted()
	filter["slug"] = keywordPattern(keyword)
	return r.findMany(ctx, filter, nil)
}

func (r *MongoProductRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Product, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *MongoProductRepository) List(ctx context.Context, page, limit int64) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = listPageSize
	}
	return r.paginate(ctx, notDeleted(), nil, page, limit)
}

func (r *MongoProductRepository) SearchAndFilter(ctx context.Context, filter domain.Filter) (*domain.Page, error) {
	query, sort, page, limit := CompileFilter(filter)
	return r.paginate(ctx, query, sort, page, limit)
}

// paginate is the store's paginated-scan primitive: count plus a windowed
// find, wrapped into the pagination envelope.
func (r *MongoProductRepository) paginate(ctx context.Context, filter bson.M, sort bson.D, page, limit int64) (*domain.Page, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	if sort != nil {
		opts.SetSort(sort)
	}

	items, err := r.findMany(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return buildPage(items, total, page, limit), nil
}

// buildPage assembles the pagination envelope. Pages is the ceiling of
// total/limit; an empty result set has zero pages.
func buildPage(items []domain.Product, total, page, limit int64) *domain.Page {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return &domain.Page{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

func (r *MongoProductRepository) ListSlugs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"slug": 1})
	cursor, err := r.collection.Find(ctx, notDeleted(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query slugs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode slugs: %w", err)
	}

	slugs := make([]string, 0, len(docs))
	for _, d := range docs {
		slugs = append(slugs, d.Slug)
	}
	return slugs, nil
}

func (r *MongoProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	set := patchDocument(patch)
	if len(set) == 0 {
		// Nothing to replace; an empty patch degenerates to a point lookup.
		return r.FindByID(ctx, id)
	}

	filter := notDeleted()
	filter["_id"] = id

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product domain.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// patchDocument builds the $set document from the non-nil patch fields.
// Slug, id and created_at are never part of it.
func patchDocument(patch domain.ProductPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.ProductCode != nil {
		set["product_code"] = *patch.ProductCode
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Sale != nil {
		set["sale"] = *patch.Sale
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.SupplierID != nil {
		set["supplier_id"] = *patch.SupplierID
	}
	if patch.Specifications != nil {
		set["specifications"] = *patch.Specifications
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.AcceptableExpiryThreshold != nil {
		set["acceptable_expiry_threshold"] = *patch.AcceptableExpiryThreshold
	}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.Show != nil {
		set["show"] = *patch.Show
	}
	return set
}

func (r *MongoProductRepository) SoftDeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	filter := notDeleted()
	filter["_id"] = id

	var product domain.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"deleted_at": time.Now()}}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return &product, nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, notDeleted())
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *MongoProductRepository) CountVisible(ctx context.Context) (int64, error) {
	filter := notDeleted()
	filter["show"] = true
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count visible products: %w", err)
	}
	return count, nil
}
