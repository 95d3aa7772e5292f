package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"skirentals-backend/internal/security"
	"skirentals-backend/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Equipment    *EquipmentHandler
	Collection   *CollectionHandler
	Cart         *CartHandler
	Rental       *RentalHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
}

func NewHandlers(
	authSvc service.AuthService,
	equipmentSvc service.EquipmentService,
	collectionSvc service.CollectionService,
	cartSvc service.CartService,
	rentalSvc service.RentalService,
	reviewSvc service.ReviewService,
	noteSvc service.NotificationService,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(authSvc),
		Equipment:    NewEquipmentHandler(equipmentSvc),
		Collection:   NewCollectionHandler(collectionSvc),
		Cart:         NewCartHandler(cartSvc),
		Rental:       NewRentalHandler(rentalSvc),
		Review:       NewReviewHandler(reviewSvc),
		Notification: NewNotificationHandler(noteSvc),
	}
}

// NewRouter wires every route. Browse endpoints accept anonymous callers;
// everything that acts on behalf of a user requires a token.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)
	r.Use(IdentityMiddleware(tokens))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Auth
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/me", requireAuth(h.Auth.GetProfile)).Methods(http.MethodGet)
	api.HandleFunc("/me", requireAuth(h.Auth.UpdateProfile)).Methods(http.MethodPatch)

	// Equipment
	api.HandleFunc("/equipment", h.Equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/search", h.Equipment.Search).Methods(http.MethodGet)
	api.HandleFunc("/equipment", requireAuth(h.Equipment.Create)).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}", h.Equipment.Get).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}", requireAuth(h.Equipment.Update)).Methods(http.MethodPut)
	api.HandleFunc("/equipment/{id}", requireAuth(h.Equipment.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/equipment/{id}/images", h.Equipment.ListImages).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/images", requireAuth(h.Equipment.AddImage)).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/images/{imageID}", requireAuth(h.Equipment.DeleteImage)).Methods(http.MethodDelete)

	// Reviews
	api.HandleFunc("/equipment/{id}/reviews", h.Review.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id}/reviews", requireAuth(h.Review.Submit)).Methods(http.MethodPost)

	// Collections
	api.HandleFunc("/collections", h.Collection.List).Methods(http.MethodGet)
	api.HandleFunc("/collections", requireAuth(h.Collection.Create)).Methods(http.MethodPost)
	api.HandleFunc("/collections/requests", requireAuth(h.Collection.ListPendingRequests)).Methods(http.MethodGet)
	api.HandleFunc("/collections/requests/{requestID}/approve", requireAuth(h.Collection.ApproveAccess)).Methods(http.MethodPost)
	api.HandleFunc("/collections/requests/{requestID}/deny", requireAuth(h.Collection.DenyAccess)).Methods(http.MethodPost)
	api.HandleFunc("/collections/{id}", h.Collection.Get).Methods(http.MethodGet)
	api.HandleFunc("/collections/{id}", requireAuth(h.Collection.Update)).Methods(http.MethodPut)
	api.HandleFunc("/collections/{id}", requireAuth(h.Collection.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/collections/{id}/items/{equipmentID}", requireAuth(h.Collection.AddItem)).Methods(http.MethodPut)
	api.HandleFunc("/collections/{id}/items/{equipmentID}", requireAuth(h.Collection.RemoveItem)).Methods(http.MethodDelete)
	api.HandleFunc("/collections/{id}/access-requests", requireAuth(h.Collection.RequestAccess)).Methods(http.MethodPost)
	api.HandleFunc("/collections/{id}/users/{userID}", requireAuth(h.Collection.GrantUser)).Methods(http.MethodPut)
	api.HandleFunc("/collections/{id}/users/{userID}", requireAuth(h.Collection.RevokeUser)).Methods(http.MethodDelete)

	// Cart
	api.HandleFunc("/cart", requireAuth(h.Cart.Get)).Methods(http.MethodGet)
	api.HandleFunc("/cart/items", requireAuth(h.Cart.AddItem)).Methods(http.MethodPost)
	api.HandleFunc("/cart/quick-add", requireAuth(h.Cart.QuickAdd)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{itemID}", requireAuth(h.Cart.RemoveItem)).Methods(http.MethodDelete)
	api.HandleFunc("/cart", requireAuth(h.Cart.Clear)).Methods(http.MethodDelete)
	api.HandleFunc("/cart/checkout", requireAuth(h.Cart.Checkout)).Methods(http.MethodPost)

	// Rentals
	api.HandleFunc("/rentals", requireAuth(h.Rental.List)).Methods(http.MethodGet)
	api.HandleFunc("/rentals", requireAuth(h.Rental.Request)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/counts", requireAuth(h.Rental.Counts)).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", requireAuth(h.Rental.Get)).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}/approve", requireAuth(h.Rental.Approve)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/deny", requireAuth(h.Rental.Deny)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/cancel", requireAuth(h.Rental.Cancel)).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/complete", requireAuth(h.Rental.Complete)).Methods(http.MethodPost)

	// Notifications
	api.HandleFunc("/notifications", requireAuth(h.Notification.List)).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read-all", requireAuth(h.Notification.MarkAllAsRead)).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id}/read", requireAuth(h.Notification.MarkAsRead)).Methods(http.MethodPost)

	return r
}
