package http

import (
	"net/http"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListShipments godoc
// @Summary     Browse open shipments
// @Description Only shipments whose desired delivery date lies in the future are listed.
// @Description Any other query parameter filters an allowed field: from=US, rewardPrice[gte]=50.
// @Tags        shipments
// @Produce     json
// @Param       page   query    int    false "Page number"
// @Param       limit  query    int    false "Page size, at most 100"
// @Param       sort   query    string false "Sort keys, e.g. -rewardPrice,createdAt"
// @Param       fields query    string false "Projected fields, e.g. from,to,rewardPrice"
// @Param       search query    string false "Matches product names"
// @Success     200    {object} listResponse{data=[]ShipmentResponse}
// @Failure     400    {object} errorResponse
// @Router      /shipments/all [get]
func (s *Server) ListShipments(c echo.Context) error {
	query, err := queries.NewListShipmentsQuery(c.QueryParams())
	if err != nil {
		return err
	}
	return s.listShipments(c, query)
}

// ListMyShipments godoc
// @Summary  The caller's shipments, expired ones included
// @Tags     shopper
// @Produce  json
// @Param    page   query    int    false "Page number"
// @Param    limit  query    int    false "Page size, at most 100"
// @Param    sort   query    string false "Sort keys"
// @Param    fields query    string false "Projected fields"
// @Success  200    {object} listResponse{data=[]ShipmentResponse}
// @Failure  401    {object} errorResponse
// @Security BearerAuth
// @Router   /shopper/get-my-shipments [get]
func (s *Server) ListMyShipments(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListMyShipmentsQuery(p.UserID, c.QueryParams())
	if err != nil {
		return err
	}
	return s.listShipments(c, query)
}

func (s *Server) listShipments(c echo.Context, query queries.ListShipmentsQuery) error {
	page, err := s.h.ListShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	resp, err := newListResponse(page, toShipmentResponse)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetShipment godoc
// @Summary Shipment details with its participants
// @Tags    shipments
// @Produce json
// @Param   id  path     string true "Shipment ID"
// @Success 200 {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure 404 {object} errorResponse
// @Router  /shipments/{id} [get]
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// CreateShipment godoc
// @Summary     Request products to be brought from another country
// @Description JSON body, or multipart/form-data with the JSON document in "data" and one
// @Description file per product in "photos". A shopper may have at most 3 open shipments.
// @Tags        shopper
// @Accept      json,mpfd
// @Produce     json
// @Param       request body     createShipmentRequest true "Shipment"
// @Success     201     {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure     400     {object} errorResponse
// @Security    BearerAuth
// @Router      /shopper/create-shipment [post]
func (s *Server) CreateShipment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	photos, release, err := bindShipmentPayload(c, &req)
	if err != nil {
		return err
	}
	defer release()

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		id, p.UserID, productParams(req.Products), photos,
		req.From, req.To, req.DesiredDeliveryDate.Time, req.RewardPrice,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusCreated, id)
}

// UpdateShipment godoc
// @Summary     Change a pending shipment
// @Description Only the owner may change a shipment, and only while it is PENDING.
// @Description Sending products replaces the whole list and requires one photo per product.
// @Tags        shopper
// @Accept      json,mpfd
// @Produce     json
// @Param       id      path     string                true "Shipment ID"
// @Param       request body     updateShipmentRequest true "Changed fields"
// @Success     200     {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure     400     {object} errorResponse
// @Failure     403     {object} errorResponse
// @Failure     404     {object} errorResponse
// @Security    BearerAuth
// @Router      /shopper/update-shipment/{id} [patch]
func (s *Server) UpdateShipment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateShipmentRequest
	photos, release, err := bindShipmentPayload(c, &req)
	if err != nil {
		return err
	}
	defer release()

	cmd, err := commands.NewUpdateShipmentCommand(p.UserID, id, commands.ShipmentPatch{
		DesiredDeliveryDate: req.DesiredDeliveryDate.timePtr(),
		RewardPrice:         req.RewardPrice,
		From:                req.From,
		To:                  req.To,
		Products:            productParams(req.Products),
		Photos:              photos,
	})
	if err != nil {
		return err
	}
	if err = s.h.UpdateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// DeleteShipment godoc
// @Summary     Delete a shipment
// @Description Allowed for the owner while the shipment is PENDING, UNDER_REVIEW or PUBLISHED.
// @Tags        shopper
// @Param       id  path string true "Shipment ID"
// @Success     204
// @Failure     400 {object} errorResponse
// @Failure     403 {object} errorResponse
// @Failure     404 {object} errorResponse
// @Security    BearerAuth
// @Router      /shopper/delete-shipment/{id} [delete]
func (s *Server) DeleteShipment(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteShipmentCommand(p.UserID, id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmDelivery godoc
// @Summary     Confirm that the products arrived
// @Description Moves the shipment to DELIVERED_TO_SHOPPER and credits the traveler's earnings.
// @Tags        shopper
// @Produce     json
// @Param       id  path     string true "Shipment ID"
// @Success     200 {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure     400 {object} errorResponse
// @Failure     403 {object} errorResponse
// @Security    BearerAuth
// @Router      /shopper/confirm-delivery/{id} [patch]
func (s *Server) ConfirmDelivery(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmDeliveryCommand(p.UserID, id)
	if err != nil {
		return err
	}
	if err = s.h.ConfirmDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// ReviewTrip godoc
// @Summary     Rate the traveler who carried one of the caller's shipments
// @Description One review per shopper and traveler pair.
// @Tags        shopper
// @Accept      json
// @Produce     json
// @Param       travelerId path     string        true "Traveler ID"
// @Param       request    body     reviewRequest true "Review"
// @Success     201        {object} messageResponse
// @Failure     400        {object} errorResponse
// @Security    BearerAuth
// @Router      /shopper/review-trip/{travelerId} [post]
func (s *Server) ReviewTrip(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	travelerID, err := pathID(c, "travelerId")
	if err != nil {
		return err
	}
	var req reviewRequest
	if err = bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewReviewTripCommand(kernel.NewUUID(), p.UserID, travelerID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	if err = s.h.ReviewTrip.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Status: statusSuccess, Message: "Review submitted"})
}

// ModerateShipment godoc
// @Summary     Advance a shipment through moderation
// @Description PENDING becomes UNDER_REVIEW, UNDER_REVIEW becomes PUBLISHED.
// @Tags        admin
// @Produce     json
// @Param       id  path     string true "Shipment ID"
// @Success     200 {object} dataResponse{data=ShipmentDetailsResponse}
// @Failure     400 {object} errorResponse
// @Failure     403 {object} errorResponse
// @Security    BearerAuth
// @Router      /admin/shipments/{id}/moderate [patch]
func (s *Server) ModerateShipment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewModerateShipmentCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.ModerateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

func (s *Server) respondShipment(c echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return err
	}
	details, err := s.h.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, dataResponse{Status: statusSuccess, Data: toShipmentDetailsResponse(details)})
}
