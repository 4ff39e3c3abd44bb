package carepackages

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CarePackageMongoRepository struct {
	Collection *mongo.Collection
}

func NewCarePackageMongoRepository(db *mongo.Client, dbName string) contracts.CarePackageRepository {
	return &CarePackageMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCarePackages),
	}
}

func (r *CarePackageMongoRepository) ListActive(ctx context.Context, patientID string) ([]models.CarePackage, error) {
	filter := bson.M{
		"patient_id":         patientID,
		"remaining_sessions": bson.M{"$gt": 0},
	}
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var packages []models.CarePackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return packages, nil
}

func (r *CarePackageMongoRepository) FindByID(ctx context.Context, packageID string) (*models.CarePackage, error) {
	var carePackage models.CarePackage
	err := r.Collection.FindOne(ctx, bson.M{"_id": packageID}).Decode(&carePackage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &carePackage, nil
}

// DecrementSession consumes one session using a single conditional update so
// two concurrent checkouts can never drive the counter below zero. The filter
// requires remaining_sessions > 0; when it fails to match an existing package
// the caller gets the distinct exhaustion error.
func (r *CarePackageMongoRepository) DecrementSession(ctx context.Context, packageID string, usage models.CarePackageUsage) (*models.CarePackage, error) {
	filter := bson.M{
		"_id":                packageID,
		"remaining_sessions": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc":  bson.M{"remaining_sessions": -1},
		"$push": bson.M{"usages": usage},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.CarePackage
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		existing, findErr := r.FindByID(ctx, packageID)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, exceptions.ErrCarePackageNotFound(fmt.Errorf("care package %s does not exist", packageID))
		}
		return nil, exceptions.ErrCarePackageExhausted(fmt.Errorf("care package %s has no remaining sessions", packageID))
	} else if err != nil {
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

// RestoreSession undoes one decrement after a failed commit. The filter caps
// the counter at total_sessions so a stray restore cannot overfill a package.
func (r *CarePackageMongoRepository) RestoreSession(ctx context.Context, packageID string) error {
	filter := bson.M{
		"_id": packageID,
		"$expr": bson.M{
			"$lt": bson.A{"$remaining_sessions", "$total_sessions"},
		},
	}
	update := bson.M{
		"$inc": bson.M{"remaining_sessions": 1},
		"$pop": bson.M{"usages": 1},
	}

	err := r.Collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err == mongo.ErrNoDocuments {
		return nil
	} else if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
