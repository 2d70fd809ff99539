package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/savrhq/order-notifications-api/api"
	"github.com/savrhq/order-notifications-api/api/live"
	"github.com/savrhq/order-notifications-api/api/scheduler"
	"github.com/savrhq/order-notifications-api/api/watcher"
	"github.com/savrhq/order-notifications-api/config"
	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/dispatch"
	"github.com/savrhq/order-notifications-api/messaging"
	"github.com/savrhq/order-notifications-api/models"
)

const requestTimeout = 30 * time.Second

// App stores the router, db connection and background components, so it can be reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Dispatcher *dispatch.Dispatcher
	Watcher    *watcher.OrderWatcher
	Scheduler  *scheduler.Scheduler
	Hub        *live.Hub
	dbHelper   databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.MiddlewareAuth{ServiceToken: a.Config.ServiceToken}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	n := Notification{Dispatcher: a.Dispatcher}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws/notifications", a.Hub.HandleWebSocket)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(mux.MiddlewareFunc(api.TimeoutMiddleware(requestTimeout)))

	apiCreate.Handle("/notifications/send", api.Middleware(http.HandlerFunc(n.SendNotificationHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, set up the push
// gateway client once, and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("order-notifications-api has connected to the database")

	// the FCM credential is loaded exactly once, before the first request
	sender, err := messaging.NewFCMSender(context.Background(), a.Config.FCMProjectID, a.Config.FCMCredentialsFile)
	if err != nil {
		zap.S().With(err).Error("failed to create fcm sender")
		return err
	}

	a.Hub = live.NewHub()
	a.Dispatcher = &dispatch.Dispatcher{
		Users:  databases.NewUserDatabase(a.dbHelper),
		Sender: sender,
		Live:   a.Hub,
	}
	a.Watcher = watcher.NewOrderWatcher(
		databases.NewOrderDatabase(a.dbHelper),
		databases.NewRestaurantDatabase(a.dbHelper),
		a.Dispatcher,
	)
	a.Scheduler = scheduler.NewScheduler(client, a.Dispatcher)

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
