package databases

// go generate: mockery --name RestaurantDatabase

import (
	"context"

	"github.com/savrhq/order-notifications-api/models"
)

const restaurantCollectionName = "restaurants"

// RestaurantDatabase contains the methods to use with the restaurant database
type RestaurantDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Restaurant, error)
}

type restaurantDatabase struct {
	db DatabaseHelper
}

// NewRestaurantDatabase initializes a new instance of restaurant database with the provided db connection
func NewRestaurantDatabase(db DatabaseHelper) RestaurantDatabase {
	return &restaurantDatabase{
		db: db,
	}
}

func (r *restaurantDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	err := r.db.Collection(restaurantCollectionName).FindOne(ctx, filter).Decode(&restaurant)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}
