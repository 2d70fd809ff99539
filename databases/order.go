package databases

// go generate: mockery --name OrderDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"
)

const orderCollectionName = "orders"

// OrderDatabase contains the methods to use with the order database. Orders
// are only ever observed through the change stream; the ordering system owns
// all writes.
type OrderDatabase interface {
	Watch(ctx context.Context, pipeline interface{}, opts ...*options.ChangeStreamOptions) (StreamHelper, error)
}

type orderDatabase struct {
	db DatabaseHelper
}

// NewOrderDatabase initializes a new instance of order database with the provided db connection
func NewOrderDatabase(db DatabaseHelper) OrderDatabase {
	return &orderDatabase{
		db: db,
	}
}

func (o *orderDatabase) Watch(ctx context.Context, pipeline interface{}, opts ...*options.ChangeStreamOptions) (StreamHelper, error) {
	return o.db.Collection(orderCollectionName).Watch(ctx, pipeline, opts...)
}
