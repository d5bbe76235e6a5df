package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	dataField   = "data"
	photosField = "photos"
	photoField  = "photo"
)

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (midnight UTC).
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return errs.NewValueIsInvalidError("date " + s)
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
} // @name RegisterRequest

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code" example:"4821"`
} // @name VerifyEmailRequest

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
} // @name LoginRequest

type forgotPasswordRequest struct {
	Email string `json:"email"`
} // @name ForgotPasswordRequest

type resetPasswordRequest struct {
	Password string `json:"password"`
} // @name ResetPasswordRequest

type updateMeRequest struct {
	Name     *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
} // @name UpdateMeRequest

type productRequest struct {
	Name     string  `json:"name" example:"Headphones"`
	Quantity int     `json:"quantity" example:"1"`
	Category string  `json:"category" example:"Electronics"`
	Link     string  `json:"link"`
	Price    float64 `json:"price" example:"199.99"`
	Weight   float64 `json:"weight" example:"0.5"`
} // @name ProductRequest

func (p productRequest) params() shipment.ProductParams {
	return shipment.ProductParams{
		Name:     p.Name,
		Quantity: p.Quantity,
		Category: shipment.Category(p.Category),
		Link:     p.Link,
		Price:    p.Price,
		Weight:   p.Weight,
	}
}

func productParams(products []productRequest) []shipment.ProductParams {
	if products == nil {
		return nil
	}
	return mapItems(products, productRequest.params)
}

type createShipmentRequest struct {
	Products            []productRequest `json:"products"`
	From                string           `json:"from" example:"US"`
	To                  string           `json:"to" example:"EG"`
	DesiredDeliveryDate Date             `json:"desiredDeliveryDate" swaggertype:"string" example:"2026-12-01"`
	RewardPrice         float64          `json:"rewardPrice" example:"60"`
} // @name CreateShipmentRequest

type updateShipmentRequest struct {
	Products            []productRequest `json:"products"`
	From                *string          `json:"from"`
	To                  *string          `json:"to"`
	DesiredDeliveryDate *Date            `json:"desiredDeliveryDate" swaggertype:"string"`
	RewardPrice         *float64         `json:"rewardPrice"`
} // @name UpdateShipmentRequest

type createTripRequest struct {
	From           string  `json:"from" example:"DE"`
	To             string  `json:"to" example:"EG"`
	DepartureDate  Date    `json:"departureDate" swaggertype:"string" example:"2026-11-20"`
	AvailableSpace float64 `json:"availableSpace" example:"20"`
} // @name CreateTripRequest

type updateTripRequest struct {
	DepartureDate  *Date    `json:"departureDate" swaggertype:"string"`
	AvailableSpace *float64 `json:"availableSpace"`
} // @name UpdateTripRequest

type reviewRequest struct {
	Rating  int    `json:"rating" example:"5"`
	Comment string `json:"comment"`
} // @name ReviewRequest

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// decodeStrict rejects unknown fields so only allow-listed attributes can be changed.
func decodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) {
			return err
		}
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

func bindJSON(c echo.Context, dst any) error {
	return decodeStrict(c.Request().Body, dst)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindShipmentPayload reads a shipment document either from the JSON body or, for
// multipart requests, from the "data" form field together with the "photos" files
// in product order. The returned release func closes the opened files.
func bindShipmentPayload(c echo.Context, dst any) ([]ports.File, func(), error) {
	if !isMultipart(c) {
		return nil, func() {}, bindJSON(c, dst)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, errs.NewValueIsInvalidErrorWithCause("multipart form", err)
	}
	data := form.Value[dataField]
	if len(data) == 0 || strings.TrimSpace(data[0]) == "" {
		return nil, func() {}, errs.NewValueIsRequiredError(dataField)
	}
	if err = decodeStrict(bytes.NewBufferString(data[0]), dst); err != nil {
		return nil, func() {}, err
	}

	return openFiles(form.File[photosField])
}

// optionalPhoto opens the "photo" file of a multipart request, if any.
func optionalPhoto(c echo.Context) (*ports.File, func(), error) {
	if !isMultipart(c) {
		return nil, func() {}, nil
	}
	header, err := c.FormFile(photoField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, errs.NewValueIsInvalidErrorWithCause(photoField, err)
	}
	files, release, err := openFiles([]*multipart.FileHeader{header})
	if err != nil {
		return nil, release, err
	}
	return &files[0], release, nil
}

func openFiles(headers []*multipart.FileHeader) ([]ports.File, func(), error) {
	files := make([]ports.File, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	release := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			release()
			return nil, func() {}, errs.NewValueIsInvalidErrorWithCause(h.Filename, err)
		}
		closers = append(closers, f)
		files = append(files, ports.File{
			Name:        h.Filename,
			ContentType: h.Header.Get(echo.HeaderContentType),
			Content:     f,
		})
	}
	return files, release, nil
}
