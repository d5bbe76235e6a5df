package http

import (
	"encoding/json"
	"time"

	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/domain/model/kernel"
)

const statusSuccess = "success"

type messageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
} // @name MessageResponse

type dataResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

type listResponse struct {
	Status  string `json:"status" example:"success"`
	Results int    `json:"results"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Data    any    `json:"data"`
}

type sessionResponse struct {
	Status    string        `json:"status" example:"success"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Data      *UserResponse `json:"data,omitempty"`
} // @name SessionResponse

type ProductResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	Link     string  `json:"link"`
	Price    float64 `json:"price"`
	Weight   float64 `json:"weight"`
	Photo    string  `json:"photo"`
} // @name Product

type ShipmentResponse struct {
	ID                  string            `json:"id"`
	ShopperID           string            `json:"shopperId"`
	Products            []ProductResponse `json:"products"`
	From                string            `json:"from" example:"US"`
	To                  string            `json:"to" example:"EG"`
	DesiredDeliveryDate time.Time         `json:"desiredDeliveryDate"`
	RewardPrice         float64           `json:"rewardPrice"`
	Fees                float64           `json:"fees"`
	TotalPrice          float64           `json:"totalPrice"`
	TotalWeight         float64           `json:"totalWeight"`
	Status              string            `json:"status" example:"PENDING"`
	StatusHistory       []string          `json:"statusHistory"`
	TripID              *string           `json:"tripId,omitempty"`
	TravelerID          *string           `json:"travelerId,omitempty"`
	ReviewID            *string           `json:"reviewId,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
} // @name Shipment

type ShipmentDetailsResponse struct {
	ShipmentResponse
	Shopper  *UserSummaryResponse `json:"shopper,omitempty"`
	Traveler *UserSummaryResponse `json:"traveler,omitempty"`
	Review   *ReviewResponse      `json:"review,omitempty"`
} // @name ShipmentDetails

type TripResponse struct {
	ID             string    `json:"id"`
	TravelerID     string    `json:"travelerId"`
	From           string    `json:"from" example:"DE"`
	To             string    `json:"to" example:"EG"`
	DepartureDate  time.Time `json:"departureDate"`
	AvailableSpace float64   `json:"availableSpace"`
	ConsumedSpace  float64   `json:"consumedSpace"`
	Status         string    `json:"status" example:"UNDER_REVIEW"`
	StatusHistory  []string  `json:"statusHistory"`
	ShopperIDs     []string  `json:"shopperIds"`
	ShipmentIDs    []string  `json:"shipmentIds"`
	ReviewIDs      []string  `json:"reviewIds"`
	CreatedAt      time.Time `json:"createdAt"`
} // @name Trip

type TripDetailsResponse struct {
	TripResponse
	Traveler *UserSummaryResponse `json:"traveler,omitempty"`
} // @name TripDetails

type UserSummaryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Photo         string `json:"photo"`
	AverageRating int    `json:"averageRating"`
} // @name UserSummary

type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Photo         string    `json:"photo"`
	Role          string    `json:"role" example:"USER"`
	Verified      bool      `json:"verified"`
	Earnings      float64   `json:"earnings"`
	AverageRating int       `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
} // @name User

type ReviewResponse struct {
	ID         string    `json:"id"`
	ReviewerID string    `json:"reviewerId"`
	RevieweeID string    `json:"revieweeId"`
	Subject    string    `json:"subject" example:"TRIP"`
	SubjectID  string    `json:"subjectId"`
	Rating     int       `json:"rating" example:"5"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
} // @name Review

func toShipmentResponse(v queries.ShipmentView) ShipmentResponse {
	products := make([]ProductResponse, 0, len(v.Products))
	for _, p := range v.Products {
		products = append(products, ProductResponse(p))
	}
	return ShipmentResponse{
		ID:                  v.ID.String(),
		ShopperID:           v.ShopperID.String(),
		Products:            products,
		From:                v.From,
		To:                  v.To,
		DesiredDeliveryDate: v.DesiredDeliveryDate,
		RewardPrice:         v.RewardPrice,
		Fees:                v.Fees,
		TotalPrice:          v.TotalPrice,
		TotalWeight:         v.TotalWeight,
		Status:              v.Status,
		StatusHistory:       nonNil(v.StatusHistory),
		TripID:              optionalString(v.TripID),
		TravelerID:          optionalString(v.TravelerID),
		ReviewID:            optionalString(v.ReviewID),
		CreatedAt:           v.CreatedAt,
	}
}

func toShipmentDetailsResponse(v queries.ShipmentDetails) ShipmentDetailsResponse {
	out := ShipmentDetailsResponse{
		ShipmentResponse: toShipmentResponse(v.ShipmentView),
		Shopper:          toUserSummaryResponse(v.Shopper),
		Traveler:         toUserSummaryResponse(v.Traveler),
	}
	if v.Review != nil {
		r := toReviewResponse(*v.Review)
		out.Review = &r
	}
	return out
}

func toTripResponse(v queries.TripView) TripResponse {
	return TripResponse{
		ID:             v.ID.String(),
		TravelerID:     v.TravelerID.String(),
		From:           v.From,
		To:             v.To,
		DepartureDate:  v.DepartureDate,
		AvailableSpace: v.AvailableSpace,
		ConsumedSpace:  v.ConsumedSpace,
		Status:         v.Status,
		StatusHistory:  nonNil(v.StatusHistory),
		ShopperIDs:     idStrings(v.ShopperIDs),
		ShipmentIDs:    idStrings(v.ShipmentIDs),
		ReviewIDs:      idStrings(v.ReviewIDs),
		CreatedAt:      v.CreatedAt,
	}
}

func toTripDetailsResponse(v queries.TripDetails) TripDetailsResponse {
	return TripDetailsResponse{
		TripResponse: toTripResponse(v.TripView),
		Traveler:     toUserSummaryResponse(v.Traveler),
	}
}

func toUserResponse(v queries.UserView) UserResponse {
	return UserResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		Email:         v.Email,
		Photo:         v.Photo,
		Role:          v.Role,
		Verified:      v.Verified,
		Earnings:      v.Earnings,
		AverageRating: v.AverageRating,
		CreatedAt:     v.CreatedAt,
	}
}

func toUserSummaryResponse(v *queries.UserSummary) *UserSummaryResponse {
	if v == nil {
		return nil
	}
	return &UserSummaryResponse{ID: v.ID.String(), Name: v.Name, Photo: v.Photo, AverageRating: v.AverageRating}
}

func toReviewResponse(v queries.ReviewView) ReviewResponse {
	return ReviewResponse{
		ID:         v.ID.String(),
		ReviewerID: v.ReviewerID.String(),
		RevieweeID: v.RevieweeID.String(),
		Subject:    v.Subject,
		SubjectID:  v.SubjectID.String(),
		Rating:     v.Rating,
		Comment:    v.Comment,
		CreatedAt:  v.CreatedAt,
	}
}

func mapItems[V, R any](items []V, convert func(V) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}

func newListResponse[V, R any](page queries.Page[V], convert func(V) R) (listResponse, error) {
	data, err := project(mapItems(page.Items, convert), page.Fields)
	if err != nil {
		return listResponse{}, err
	}
	return listResponse{
		Status:  statusSuccess,
		Results: len(page.Items),
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		Data:    data,
	}, nil
}

// project keeps only the requested JSON fields of every item, plus "id".
// Without fields the items are returned unchanged.
func project[T any](items []T, fields []string) (any, error) {
	if len(fields) == 0 {
		return items, nil
	}

	keep := make(map[string]struct{}, len(fields)+1)
	keep["id"] = struct{}{}
	for _, f := range fields {
		keep[f] = struct{}{}
	}

	out := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var all map[string]json.RawMessage
		if err = json.Unmarshal(raw, &all); err != nil {
			return nil, err
		}
		for k := range all {
			if _, ok := keep[k]; !ok {
				delete(all, k)
			}
		}
		out = append(out, all)
	}
	return out, nil
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
