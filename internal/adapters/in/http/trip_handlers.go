package http

import (
	"net/http"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListTrips godoc
// @Summary     Browse upcoming trips
// @Description Only trips departing in the future with free space are listed.
// @Tags        trips
// @Produce     json
// @Param       page   query    int    false "Page number"
// @Param       limit  query    int    false "Page size, at most 100"
// @Param       sort   query    string false "Sort keys, e.g. departureDate"
// @Param       fields query    string false "Projected fields"
// @Success     200    {object} listResponse{data=[]TripResponse}
// @Failure     400    {object} errorResponse
// @Router      /trips/all [get]
func (s *Server) ListTrips(c echo.Context) error {
	query, err := queries.NewListTripsQuery(c.QueryParams())
	if err != nil {
		return err
	}
	return s.listTrips(c, query)
}

// ListMyTrips godoc
// @Summary  The caller's trips
// @Tags     traveler
// @Produce  json
// @Param    page   query    int    false "Page number"
// @Param    limit  query    int    false "Page size, at most 100"
// @Param    sort   query    string false "Sort keys"
// @Param    fields query    string false "Projected fields"
// @Success  200    {object} listResponse{data=[]TripResponse}
// @Failure  401    {object} errorResponse
// @Security BearerAuth
// @Router   /traveler/get-my-trips [get]
func (s *Server) ListMyTrips(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListMyTripsQuery(p.UserID, c.QueryParams())
	if err != nil {
		return err
	}
	return s.listTrips(c, query)
}

func (s *Server) listTrips(c echo.Context, query queries.ListTripsQuery) error {
	page, err := s.h.ListTrips.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	resp, err := newListResponse(page, toTripResponse)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTrip godoc
// @Summary Trip details with the traveler
// @Tags    trips
// @Produce json
// @Param   id  path     string true "Trip ID"
// @Success 200 {object} dataResponse{data=TripDetailsResponse}
// @Failure 404 {object} errorResponse
// @Router  /trips/{id} [get]
func (s *Server) GetTrip(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, id)
}

// CreateTrip godoc
// @Summary     Announce a trip
// @Description Departure must lie in the future, available space is between 0 and 100 kg.
// @Tags        traveler
// @Accept      json
// @Produce     json
// @Param       request body     createTripRequest true "Trip"
// @Success     201     {object} dataResponse{data=TripDetailsResponse}
// @Failure     400     {object} errorResponse
// @Security    BearerAuth
// @Router      /traveler/create-trip [post]
func (s *Server) CreateTrip(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req createTripRequest
	if err = bindJSON(c, &req); err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateTripCommand(id, p.UserID, req.From, req.To, req.DepartureDate.Time, req.AvailableSpace)
	if err != nil {
		return err
	}
	if err = s.h.CreateTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusCreated, id)
}

// UpdateTrip godoc
// @Summary     Change the departure date or the available space
// @Description Only while the trip is UNDER_REVIEW and carries no shipments.
// @Tags        traveler
// @Accept      json
// @Produce     json
// @Param       id      path     string            true "Trip ID"
// @Param       request body     updateTripRequest true "Changed fields"
// @Success     200     {object} dataResponse{data=TripDetailsResponse}
// @Failure     400     {object} errorResponse
// @Failure     403     {object} errorResponse
// @Security    BearerAuth
// @Router      /traveler/update-trip/{id} [patch]
func (s *Server) UpdateTrip(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateTripRequest
	if err = bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewUpdateTripCommand(p.UserID, id, req.DepartureDate.timePtr(), req.AvailableSpace)
	if err != nil {
		return err
	}
	if err = s.h.UpdateTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, id)
}

// DeleteTrip godoc
// @Summary  Delete a trip that carries no shipments
// @Tags     traveler
// @Param    id  path string true "Trip ID"
// @Success  204
// @Failure  400 {object} errorResponse
// @Failure  403 {object} errorResponse
// @Security BearerAuth
// @Router   /traveler/delete-trip/{id} [delete]
func (s *Server) DeleteTrip(c echo.Context) error {
	return tripCommand(s, c, commands.NewDeleteTripCommand, s.h.DeleteTrip, http.StatusNoContent)
}

// CompleteTrip godoc
// @Summary  Mark an ON_TRAVEL trip as COMPLETED
// @Tags     traveler
// @Produce  json
// @Param    id  path     string true "Trip ID"
// @Success  200 {object} dataResponse{data=TripDetailsResponse}
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /traveler/complete-trip/{id} [patch]
func (s *Server) CompleteTrip(c echo.Context) error {
	return tripCommand(s, c, commands.NewCompleteTripCommand, s.h.CompleteTrip, http.StatusOK)
}

// CancelTrip godoc
// @Summary  Cancel a trip before it starts travelling
// @Tags     traveler
// @Produce  json
// @Param    id  path     string true "Trip ID"
// @Success  200 {object} dataResponse{data=TripDetailsResponse}
// @Failure  400 {object} errorResponse
// @Security BearerAuth
// @Router   /traveler/cancel-trip/{id} [patch]
func (s *Server) CancelTrip(c echo.Context) error {
	return tripCommand(s, c, commands.NewCancelTripCommand, s.h.CancelTrip, http.StatusOK)
}

// tripCommand runs a traveler command addressed by the :id path parameter.
func tripCommand[C any](
	s *Server,
	c echo.Context,
	newCommand func(travelerID, tripID kernel.UUID) (C, error),
	handler CommandHandler[C],
	status int,
) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := newCommand(p.UserID, id)
	if err != nil {
		return err
	}
	if err = handler.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	if status == http.StatusNoContent {
		return c.NoContent(status)
	}
	return s.respondTrip(c, status, id)
}

// AcceptShipment godoc
// @Summary     Put a published shipment on one of the caller's trips
// @Description The trip must share the route, depart before the desired delivery date
// @Description and have room for the total weight of the products.
// @Tags        traveler
// @Produce     json
// @Param       shipmentId path     string true "Shipment ID"
// @Param       tripId     path     string true "Trip ID"
// @Success     200        {object} dataResponse{data=TripDetailsResponse}
// @Failure     400        {object} errorResponse
// @Failure     403        {object} errorResponse
// @Failure     409        {object} errorResponse
// @Security    BearerAuth
// @Router      /traveler/accept-shipment/{shipmentId}/{tripId} [post]
func (s *Server) AcceptShipment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	shipmentID, err := pathID(c, "shipmentId")
	if err != nil {
		return err
	}
	tripID, err := pathID(c, "tripId")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptShipmentCommand(p.UserID, shipmentID, tripID)
	if err != nil {
		return err
	}
	if err = s.h.AcceptShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, tripID)
}

// AdvanceShipmentProgress godoc
// @Summary     Report progress on an accepted shipment
// @Description ACCEPTED_BY_TRAVELER becomes BOOKING_COMPLETED, then DELIVERED_TO_TRAVELER.
// @Tags        traveler
// @Produce     json
// @Param       id  path     string true "Shipment ID"
// @Success     200 {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure     400 {object} errorResponse
// @Failure     403 {object} errorResponse
// @Security    BearerAuth
// @Router      /traveler/shipment-progress/{id} [patch]
func (s *Server) AdvanceShipmentProgress(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAdvanceShipmentProgressCommand(p.UserID, id)
	if err != nil {
		return err
	}
	if err = s.h.AdvanceShipmentProgress.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// ReviewShipment godoc
// @Summary     Rate a shopper whose shipment the caller carried
// @Description One review per traveler and shopper pair.
// @Tags        traveler
// @Accept      json
// @Produce     json
// @Param       shopperId path     string        true "Shopper ID"
// @Param       request   body     reviewRequest true "Review"
// @Success     201       {object} messageResponse
// @Failure     400       {object} errorResponse
// @Security    BearerAuth
// @Router      /traveler/review-shipment/{shopperId} [post]
func (s *Server) ReviewShipment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	shopperID, err := pathID(c, "shopperId")
	if err != nil {
		return err
	}
	var req reviewRequest
	if err = bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewReviewShipmentCommand(kernel.NewUUID(), p.UserID, shopperID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	if err = s.h.ReviewShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Status: statusSuccess, Message: "Review submitted"})
}

// PublishTrip godoc
// @Summary     Approve a trip
// @Description UNDER_REVIEW becomes PUBLISHING.
// @Tags        admin
// @Produce     json
// @Param       id  path     string true "Trip ID"
// @Success     200 {object} dataResponse{data=TripDetailsResponse}
// @Failure     400 {object} errorResponse
// @Failure     403 {object} errorResponse
// @Security    BearerAuth
// @Router      /admin/trips/{id}/publish [patch]
func (s *Server) PublishTrip(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewPublishTripCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.PublishTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondTrip(c, http.StatusOK, id)
}

func (s *Server) respondTrip(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetTripQuery(id)
	if err != nil {
		return err
	}
	details, err := s.h.GetTrip.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, dataResponse{Status: statusSuccess, Data: toTripDetailsResponse(details)})
}
