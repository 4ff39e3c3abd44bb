package coverage

import (
	"caredesk-service/internal/app/contracts"
	"caredesk-service/internal/app/models"
	"caredesk-service/internal/pkg/constvars"
	"caredesk-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type InsuranceMongoRepository struct {
	Collection *mongo.Collection
}

func NewInsuranceMongoRepository(db *mongo.Client, dbName string) contracts.InsuranceProfileRepository {
	return &InsuranceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionInsuranceProfiles),
	}
}

func (r *InsuranceMongoRepository) ListByPatient(ctx context.Context, patientID string) ([]models.InsuranceProfile, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var profiles []models.InsuranceProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return profiles, nil
}
