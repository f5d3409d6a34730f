package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelier/infras/mongo"
	"hotelier/infras/otel"
	"hotelier/internal/domains/payment/model"
	"hotelier/shared/constant"
	"hotelier/shared/logger"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongoGo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const keyLookupMaxTime = 5 * time.Second

type APIKey interface {
	GetActive(ctx context.Context, provider string) (model.APIKey, error)
}

type repositoryImpl struct {
	collection *mongoGo.Collection
	otel       otel.Otel
}

func New(conn *mongo.Connection, otel otel.Otel) APIKey {
	return &repositoryImpl{
		collection: conn.Collection(model.CollectionName),
		otel:       otel,
	}
}

// GetActive returns the newest active key of provider, or the zero key when none is stored.
func (r *repositoryImpl) GetActive(ctx context.Context, provider string) (res model.APIKey, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".api_key.GetActive")
	defer scope.End()

	opts := options.FindOne().
		SetMaxTime(keyLookupMaxTime).
		SetSort(bson.D{{Key: model.FieldCreatedAt, Value: -1}})

	err = r.collection.FindOne(ctx, bson.M{model.FieldProvider: provider, model.FieldIsActive: true}, opts).Decode(&res)
	if errors.Is(err, mongoGo.ErrNoDocuments) {
		return model.APIKey{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get %s api key: %w", provider, err)
	}

	return res, nil
}
