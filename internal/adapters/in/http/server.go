// Package http implements the inbound REST surface of the assignment core.
// Handlers parse and validate transport concerns, then delegate to command
// and query handlers; all business rules live below this layer.
package http

import (
	"net/http"

	"fleet/internal/core/application/usecases/commands"
	"fleet/internal/core/application/usecases/queries"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/notification"
	"fleet/internal/core/domain/model/trip"
	"fleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the REST routes to the application use cases.
type Server struct {
	// Command handlers
	createTripHandler           commands.CreateTripCommandHandler
	offerTripHandler            commands.OfferTripCommandHandler
	resolveNotificationHandler  commands.ResolveNotificationCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler
	reassignDriverHandler       commands.ReassignDriverCommandHandler
	reassignTripHandler         commands.ReassignTripCommandHandler
	startJourneyHandler         commands.StartJourneyCommandHandler
	updateDeliveryHandler       commands.UpdateDeliveryStatusCommandHandler
	updateTripStatusHandler     commands.UpdateTripStatusCommandHandler

	// Query handlers
	getActiveNotificationsHandler queries.GetActiveNotificationsQueryHandler
	getTripHandler                queries.GetTripQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createTripHandler commands.CreateTripCommandHandler,
	offerTripHandler commands.OfferTripCommandHandler,
	resolveNotificationHandler commands.ResolveNotificationCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	reassignDriverHandler commands.ReassignDriverCommandHandler,
	reassignTripHandler commands.ReassignTripCommandHandler,
	startJourneyHandler commands.StartJourneyCommandHandler,
	updateDeliveryHandler commands.UpdateDeliveryStatusCommandHandler,
	updateTripStatusHandler commands.UpdateTripStatusCommandHandler,
	getActiveNotificationsHandler queries.GetActiveNotificationsQueryHandler,
	getTripHandler queries.GetTripQueryHandler,
) *Server {
	return &Server{
		createTripHandler:             createTripHandler,
		offerTripHandler:              offerTripHandler,
		resolveNotificationHandler:    resolveNotificationHandler,
		markNotificationReadHandler:   markNotificationReadHandler,
		reassignDriverHandler:         reassignDriverHandler,
		reassignTripHandler:           reassignTripHandler,
		startJourneyHandler:           startJourneyHandler,
		updateDeliveryHandler:         updateDeliveryHandler,
		updateTripStatusHandler:       updateTripStatusHandler,
		getActiveNotificationsHandler: getActiveNotificationsHandler,
		getTripHandler:                getTripHandler,
	}
}

// RegisterRoutes attaches every route of the REST surface to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/trips", s.CreateTrip)
	api.GET("/trips/:id", s.GetTrip)
	api.PATCH("/trips/:id/status", s.UpdateTripStatus)
	api.POST("/trips/:id/start", s.StartJourney)
	api.PATCH("/trips/:tripId/delivery/:parcelId", s.UpdateDelivery)
	api.PATCH("/trips/:tripId/reassign", s.ReassignTrip)

	api.POST("/notifications", s.CreateNotification)
	api.GET("/notifications/driver/:id", s.GetDriverNotifications)
	api.GET("/notifications/manager/:id", s.GetManagerNotifications)
	api.PATCH("/notifications/:id/status", s.UpdateNotificationStatus)
	api.POST("/notifications/:id/reassign-driver", s.ReassignDriver)
	api.PATCH("/notifications/:id/read", s.MarkNotificationRead)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(ctx echo.Context) error {
	var req CreateTripRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	tripID, err := parseUUID("tripId", req.TripID)
	if err != nil {
		return respondError(ctx, err)
	}
	driverID, err := parseUUID("driverId", req.DriverID)
	if err != nil {
		return respondError(ctx, err)
	}
	vehicleID, err := parseUUID("vehicleId", req.VehicleID)
	if err != nil {
		return respondError(ctx, err)
	}
	parcelIDs, err := parseUUIDs(req.ParcelIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	destinations := make([]commands.DestinationData, 0, len(req.Destinations))
	for _, d := range req.Destinations {
		parcelID, destErr := parseUUID("parcelId", d.ParcelID)
		if destErr != nil {
			return respondError(ctx, destErr)
		}
		destinations = append(destinations, commands.DestinationData{
			ParcelID:     parcelID,
			Latitude:     d.Latitude,
			Longitude:    d.Longitude,
			LocationName: d.LocationName,
			Order:        d.Order,
		})
	}

	cmd, err := commands.NewCreateTripCommand(tripID, driverID, vehicleID, parcelIDs, destinations)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetTrip handles GET /api/v1/trips/:id.
func (s *Server) GetTrip(ctx echo.Context) error {
	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTripQuery(tripID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getTripHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, tripResponseFromView(view))
}

// UpdateTripStatus handles PATCH /api/v1/trips/:id/status.
func (s *Server) UpdateTripStatus(ctx echo.Context) error {
	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateTripStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newStatus, err := trip.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateTripStatusCommand(tripID, newStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateTripStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// StartJourney handles POST /api/v1/trips/:id/start.
func (s *Server) StartJourney(ctx echo.Context) error {
	tripID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewStartJourneyCommand(tripID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.startJourneyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// UpdateDelivery handles PATCH /api/v1/trips/:tripId/delivery/:parcelId.
func (s *Server) UpdateDelivery(ctx echo.Context) error {
	tripID, err := parseUUID("tripId", ctx.Param("tripId"))
	if err != nil {
		return respondError(ctx, err)
	}
	parcelID, err := parseUUID("parcelId", ctx.Param("parcelId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newStatus, err := trip.DeliveryStatusFromString(req.DeliveryStatus)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(tripID, parcelID, newStatus, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReassignTrip handles PATCH /api/v1/trips/:tripId/reassign.
func (s *Server) ReassignTrip(ctx echo.Context) error {
	tripID, err := parseUUID("tripId", ctx.Param("tripId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReassignTripRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newDriverID, err := parseUUID("newDriverId", req.NewDriverID)
	if err != nil {
		return respondError(ctx, err)
	}
	newVehicleID, err := parseUUID("newVehicleId", req.NewVehicleID)
	if err != nil {
		return respondError(ctx, err)
	}
	managerID, err := parseUUID("managerId", req.ManagerID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReassignTripCommand(tripID, newDriverID, newVehicleID, managerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reassignTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CreateNotification handles POST /api/v1/notifications.
func (s *Server) CreateNotification(ctx echo.Context) error {
	var req CreateNotificationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := offerCommandFromRequest(req)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.offerTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetDriverNotifications handles GET /api/v1/notifications/driver/:id.
func (s *Server) GetDriverNotifications(ctx echo.Context) error {
	return s.listNotifications(ctx, queries.RecipientDriver)
}

// GetManagerNotifications handles GET /api/v1/notifications/manager/:id.
func (s *Server) GetManagerNotifications(ctx echo.Context) error {
	return s.listNotifications(ctx, queries.RecipientManager)
}

func (s *Server) listNotifications(ctx echo.Context, recipientType queries.RecipientType) error {
	recipientID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveNotificationsQuery(recipientID, recipientType)
	if err != nil {
		return respondError(ctx, err)
	}

	active, err := s.getActiveNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]NotificationResponse, 0, len(active))
	for _, n := range active {
		response = append(response, notificationResponseFromView(n))
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateNotificationStatus handles PATCH /api/v1/notifications/:id/status.
func (s *Server) UpdateNotificationStatus(ctx echo.Context) error {
	notificationID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateNotificationStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewResolveNotificationCommand(notificationID, commands.Decision(req.Status))
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.resolveNotificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReassignDriver handles POST /api/v1/notifications/:id/reassign-driver.
func (s *Server) ReassignDriver(ctx echo.Context) error {
	notificationID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReassignDriverRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	newDriverID, err := parseUUID("newDriverId", req.NewDriverID)
	if err != nil {
		return respondError(ctx, err)
	}
	vehicleID, err := parseUUID("vehicleId", req.VehicleID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReassignDriverCommand(notificationID, newDriverID, vehicleID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reassignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// MarkNotificationRead handles PATCH /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := parseUUID("id", ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

func respondError(ctx echo.Context, err error) error {
	code, body := errorJSON(err)
	return ctx.JSON(code, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// parseUUID classifies malformed identifiers as client errors.
func parseUUID(name string, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := parseUUID("parcelIds", s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// offerCommandFromRequest translates the notification creation body into its
// command, resolving the recipient union from the recipientType
// discriminator. The kind defaults to trip_assignment when absent.
func offerCommandFromRequest(req CreateNotificationRequest) (commands.OfferTripCommand, error) {
	recipient, err := recipientFromRequest(req)
	if err != nil {
		return commands.OfferTripCommand{}, err
	}

	tripID, err := parseUUID("tripId", req.TripID)
	if err != nil {
		return commands.OfferTripCommand{}, err
	}
	vehicleID, err := parseUUID("vehicleId", req.VehicleID)
	if err != nil {
		return commands.OfferTripCommand{}, err
	}
	parcelIDs, err := parseUUIDs(req.ParcelIDs)
	if err != nil {
		return commands.OfferTripCommand{}, err
	}

	kind := notification.TripAssignment
	if req.Type != "" {
		if kind, err = notification.KindFromString(req.Type); err != nil {
			return commands.OfferTripCommand{}, err
		}
	}

	deliveryLocations := make([]kernel.GeoPoint, 0, len(req.DeliveryLocations))
	for _, loc := range req.DeliveryLocations {
		point, locErr := kernel.NewGeoPoint(loc.Latitude, loc.Longitude)
		if locErr != nil {
			return commands.OfferTripCommand{}, locErr
		}
		deliveryLocations = append(deliveryLocations, point)
	}

	var startLocation *kernel.GeoPoint
	if req.StartLocation != nil {
		point, locErr := kernel.NewGeoPoint(req.StartLocation.Latitude, req.StartLocation.Longitude)
		if locErr != nil {
			return commands.OfferTripCommand{}, locErr
		}
		startLocation = &point
	}

	var assignedBy *kernel.UUID
	if req.AssignedBy != "" {
		managerID, idErr := parseUUID("assignedBy", req.AssignedBy)
		if idErr != nil {
			return commands.OfferTripCommand{}, idErr
		}
		assignedBy = &managerID
	}

	return commands.NewOfferTripCommand(
		recipient,
		tripID,
		vehicleID,
		parcelIDs,
		kind,
		req.Message,
		deliveryLocations,
		startLocation,
		assignedBy,
	)
}

func recipientFromRequest(req CreateNotificationRequest) (notification.Recipient, error) {
	switch req.RecipientType {
	case "driver":
		driverID, err := parseUUID("driverId", req.DriverID)
		if err != nil {
			return nil, err
		}
		recipient, err := notification.NewDriverRecipient(driverID)
		if err != nil {
			return nil, err
		}
		return recipient, nil
	case "manager":
		managerID, err := parseUUID("managerId", req.ManagerID)
		if err != nil {
			return nil, err
		}
		recipient, err := notification.NewManagerRecipient(managerID)
		if err != nil {
			return nil, err
		}
		return recipient, nil
	default:
		return nil, errs.NewValueIsInvalidError("recipientType")
	}
}

func notificationResponseFromView(n queries.GetActiveNotificationsQueryResponse) NotificationResponse {
	parcelIDs := make([]string, 0, len(n.ParcelIDs))
	for _, id := range n.ParcelIDs {
		parcelIDs = append(parcelIDs, id.String())
	}

	return NotificationResponse{
		ID:        n.ID.String(),
		TripID:    n.TripID.String(),
		VehicleID: n.VehicleID.String(),
		ParcelIDs: parcelIDs,
		Type:      n.Kind,
		Status:    n.Status,
		Read:      n.Read,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}
}

func tripResponseFromView(view queries.GetTripQueryResponse) TripResponse {
	parcels := make([]TripParcelResponse, 0, len(view.Parcels))
	for _, p := range view.Parcels {
		parcels = append(parcels, TripParcelResponse{ID: p.ID.String(), Status: p.Status})
	}

	destinations := make([]TripDestinationResponse, 0, len(view.Destinations))
	for _, d := range view.Destinations {
		destinations = append(destinations, TripDestinationResponse{
			ParcelID:       d.ParcelID.String(),
			Latitude:       d.Latitude,
			Longitude:      d.Longitude,
			LocationName:   d.LocationName,
			Order:          d.Order,
			DeliveryStatus: d.DeliveryStatus,
			DeliveredAt:    d.DeliveredAt,
			Notes:          d.Notes,
		})
	}

	return TripResponse{
		ID:          view.ID.String(),
		Status:      view.Status,
		AssignedAt:  view.AssignedAt,
		AcceptedAt:  view.AcceptedAt,
		StartedAt:   view.StartedAt,
		CompletedAt: view.CompletedAt,
		Driver: TripDriverResponse{
			ID:          view.Driver.ID.String(),
			Name:        view.Driver.Name,
			Status:      view.Driver.Status,
			IsAvailable: view.Driver.IsAvailable,
		},
		Vehicle: TripVehicleResponse{
			ID:          view.Vehicle.ID.String(),
			PlateNumber: view.Vehicle.PlateNumber,
			Status:      view.Vehicle.Status,
		},
		Parcels:      parcels,
		Destinations: destinations,
	}
}
