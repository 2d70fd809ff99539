package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/databases/mocks"
	"github.com/savrhq/order-notifications-api/models"
)

func TestRestaurantDatabase_FindOne(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Restaurant)
		(*arg).ID = "R1"
		(*arg).MerchantID = "M1"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "missing"}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "R1"}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "restaurants").Return(collectionHelper)

	restaurantDB := databases.NewRestaurantDatabase(dbHelper)

	restaurant, err := restaurantDB.FindOne(context.Background(), bson.M{"_id": "missing"})
	assert.Nil(t, restaurant)
	assert.EqualError(t, err, "mocked-error")

	restaurant, err = restaurantDB.FindOne(context.Background(), bson.M{"_id": "R1"})
	assert.NoError(t, err)
	assert.Equal(t, "M1", restaurant.MerchantID)
}
