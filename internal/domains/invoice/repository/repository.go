package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelier/infras/mongo"
	"hotelier/infras/otel"
	"hotelier/internal/domains/invoice/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	mongoGo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicate = errors.New("invoice already exists")

type Invoice interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, invoice model.Invoice) error
	GetByNumber(ctx context.Context, invoiceNumber string) (model.Invoice, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, bookingNumber string) ([]model.Invoice, error)
	Count(ctx context.Context, bookingNumber string) (int, error)
}

type repositoryImpl struct {
	conn       *mongo.Connection
	collection *mongoGo.Collection
	otel       otel.Otel
}

func New(conn *mongo.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		conn:       conn,
		collection: conn.Collection(model.CollectionName),
		otel:       otel,
	}
}

func (r *repositoryImpl) EnsureIndexes(ctx context.Context) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".invoice.EnsureIndexes")
	defer scope.End()
	defer scope.TraceIfError(err)

	ctx, cancel := context.WithTimeout(ctx, r.conn.QueryTimeout)
	defer cancel()

	_, err = r.collection.Indexes().CreateMany(ctx, []mongoGo.IndexModel{
		{Keys: bson.D{{Key: model.FieldInvoiceNumber, Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: model.FieldBookingNumber, Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: model.FieldIssuedAt, Value: -1}}},
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to create invoice indexes: %w", err)
	}

	return nil
}

// Insert reports ErrDuplicate when the invoice number or booking number is already archived.
func (r *repositoryImpl) Insert(ctx context.Context, invoice model.Invoice) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".invoice.Insert")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, r.conn.QueryTimeout)
	defer cancel()

	if _, err = r.collection.InsertOne(ctx, invoice); err != nil {
		if mongoGo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetByNumber(ctx context.Context, invoiceNumber string) (model.Invoice, error) {
	return r.findOne(ctx, "GetByNumber", bson.M{model.FieldInvoiceNumber: invoiceNumber})
}

func (r *repositoryImpl) GetByBookingNumber(ctx context.Context, bookingNumber string) (model.Invoice, error) {
	return r.findOne(ctx, "GetByBookingNumber", bson.M{model.FieldBookingNumber: bookingNumber})
}

// findOne returns the zero invoice when nothing matches.
func (r *repositoryImpl) findOne(ctx context.Context, operation string, filter bson.M) (invoice model.Invoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".invoice."+operation)
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, r.conn.QueryTimeout)
	defer cancel()

	err = r.collection.FindOne(ctx, filter).Decode(&invoice)
	if errors.Is(err, mongoGo.ErrNoDocuments) {
		return model.Invoice{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return invoice, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

func listFilter(bookingNumber string) bson.M {
	if bookingNumber == constant.Empty {
		return bson.M{}
	}

	return bson.M{model.FieldBookingNumber: bookingNumber}
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, bookingNumber string) (invoices []model.Invoice, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".invoice.GetAll")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, r.conn.QueryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: model.FieldIssuedAt, Value: -1}})
	if params.Limit > 0 {
		opts.SetLimit(int64(params.Limit))

		if params.Page > 1 {
			opts.SetSkip(int64((params.Page - 1) * params.Limit))
		}
	}

	cursor, err := r.collection.Find(ctx, listFilter(bookingNumber), opts)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &invoices); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}

	return invoices, nil
}

func (r *repositoryImpl) Count(ctx context.Context, bookingNumber string) (total int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelMongoScopeName, constant.OtelMongoScopeName+".invoice.Count")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, r.conn.QueryTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, listFilter(bookingNumber))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	return int(count), nil
}
