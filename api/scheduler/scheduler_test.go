package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/savrhq/order-notifications-api/databases/mocks"
	"github.com/savrhq/order-notifications-api/dispatch"
)

func TestNewScheduler(t *testing.T) {
	s := NewScheduler(&mocks.ClientHelper{}, &dispatch.Dispatcher{})
	assert.NotNil(t, s)
}

func TestReportDispatchStatsPingsDatabase(t *testing.T) {
	client := &mocks.ClientHelper{}
	client.On("Ping", mock.Anything).Return(nil)

	s := NewScheduler(client, &dispatch.Dispatcher{})
	s.reportDispatchStats()

	client.AssertCalled(t, "Ping", mock.Anything)
}
