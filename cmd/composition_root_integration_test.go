package cmd_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"crowdship/cmd"
	"crowdship/internal/adapters/out/postgres/pgtest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// logBuffer collects the JSON log records, the log mailer writes verification
// codes there.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) verificationCode(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	code := ""
	scanner := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for scanner.Scan() {
		var record map[string]any
		if json.Unmarshal(scanner.Bytes(), &record) != nil {
			continue
		}
		if record["msg"] == "mail sent" && record["to"] == email {
			if c, ok := record["code"].(string); ok {
				code = c
			}
		}
	}
	return code
}

type CompositionRootIntegrationTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *pgtest.Database
	root *cmd.CompositionRoot
	e    *echo.Echo
	logs *logBuffer
}

func TestCompositionRootIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(CompositionRootIntegrationTestSuite))
}

func (s *CompositionRootIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	db, err := pgtest.Start(s.ctx)
	s.Require().NoError(err)
	s.db = db

	s.logs = &logBuffer{}
	logger := slog.New(slog.NewJSONHandler(s.logs, nil))

	configs := cmd.Config{
		AppEnv:                    "test",
		JWTSecret:                 "0123456789abcdef0123456789abcdef",
		JWTTTL:                    time.Hour,
		KafkaShipmentChangedTopic: "shipment.changed",
		KafkaTripChangedTopic:     "trip.changed",
		UploadDir:                 s.T().TempDir(),
		UploadBaseURL:             "http://localhost:8080/uploads",
		PublicBaseURL:             "http://localhost:8080",
		ExpiryJobSchedule:         "0 */5 * * * *",
		DefaultUserPhoto:          "http://localhost:8080/uploads/default.jpg",
		MailFrom:                  "crowdship <no-reply@crowdship.local>",
	}
	s.root, err = cmd.NewCompositionRoot(configs, db.DB, logger)
	s.Require().NoError(err)
	s.e, err = s.root.CreateRouter()
	s.Require().NoError(err)
}

func (s *CompositionRootIntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		s.Require().NoError(s.db.Terminate(s.ctx))
	}
}

func (s *CompositionRootIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Truncate())
}

func (s *CompositionRootIntegrationTestSuite) call(req *http.Request, token string) (int, map[string]any) {
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec.Code, body
}

func (s *CompositionRootIntegrationTestSuite) callJSON(method, path, token, body string) (int, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.call(req, token)
}

// signUp registers and verifies an account and returns its token and id.
func (s *CompositionRootIntegrationTestSuite) signUp(name, email string) (string, string) {
	code, body := s.callJSON(http.MethodPost, "/api/auth/register", "",
		`{"name":"`+name+`","email":"`+email+`","password":"correct-horse-battery"}`)
	s.Require().Equal(http.StatusCreated, code, body)

	verificationCode := s.logs.verificationCode(email)
	s.Require().Len(verificationCode, 4)

	code, body = s.callJSON(http.MethodPost, "/api/auth/verify-email", "",
		`{"email":"`+email+`","code":"`+verificationCode+`"}`)
	s.Require().Equal(http.StatusCreated, code, body)
	user := body["data"].(map[string]any)
	return body["token"].(string), user["id"].(string)
}

func (s *CompositionRootIntegrationTestSuite) createShipment(token string, deliverBy time.Time) string {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	s.Require().NoError(w.WriteField("data", `{
		"products":[{"name":"Camera","quantity":1,"category":"Electronics","link":"https://shop.example.com/camera","price":100,"weight":5}],
		"from":"US","to":"EG","desiredDeliveryDate":"`+deliverBy.Format(time.DateOnly)+`","rewardPrice":50
	}`))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photos"; filename="camera.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/shopper/create-shipment", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	code, body := s.call(req, token)
	s.Require().Equal(http.StatusCreated, code, body)

	shipment := body["data"].(map[string]any)
	s.Equal("PENDING", shipment["status"])
	s.EqualValues(10, shipment["fees"])
	products := shipment["products"].([]any)
	s.Require().Len(products, 1)
	s.True(strings.HasPrefix(products[0].(map[string]any)["photo"].(string), "http://localhost:8080/uploads/"))
	return shipment["id"].(string)
}

func (s *CompositionRootIntegrationTestSuite) promote(email string) {
	s.Require().NoError(s.db.DB.Exec("UPDATE users SET role = ? WHERE email = ?", "ADMIN", email).Error)
}

func (s *CompositionRootIntegrationTestSuite) TestShipmentIsCarriedAndReviewed() {
	today := time.Now().UTC()
	shopper, _ := s.signUp("Mona", "mona@example.com")
	traveler, travelerID := s.signUp("Omar", "omar@example.com")
	admin, _ := s.signUp("Sara", "sara@example.com")
	s.promote("sara@example.com")

	shipmentID := s.createShipment(shopper, today.AddDate(0, 0, 20))
	for _, want := range []string{"UNDER_REVIEW", "PUBLISHED"} {
		code, body := s.callJSON(http.MethodPatch, "/api/admin/shipments/"+shipmentID+"/moderate", admin, "")
		s.Require().Equal(http.StatusOK, code, body)
		s.Equal(want, body["data"].(map[string]any)["status"])
	}

	code, body := s.callJSON(http.MethodPost, "/api/traveler/create-trip", traveler,
		`{"from":"US","to":"EG","departureDate":"`+today.AddDate(0, 0, 7).Format(time.DateOnly)+`","availableSpace":30}`)
	s.Require().Equal(http.StatusCreated, code, body)
	tripID := body["data"].(map[string]any)["id"].(string)

	code, body = s.callJSON(http.MethodPatch, "/api/admin/trips/"+tripID+"/publish", admin, "")
	s.Require().Equal(http.StatusOK, code, body)
	s.Equal("PUBLISHING", body["data"].(map[string]any)["status"])

	code, body = s.callJSON(http.MethodPost, "/api/traveler/accept-shipment/"+shipmentID+"/"+tripID, traveler, "")
	s.Require().Equal(http.StatusOK, code, body)
	trip := body["data"].(map[string]any)
	s.Equal("ON_TRAVEL", trip["status"])
	s.InDelta(25.0, trip["availableSpace"], 1e-9)
	s.InDelta(5.0, trip["consumedSpace"], 1e-9)

	for _, want := range []string{"BOOKING_COMPLETED", "DELIVERED_TO_TRAVELER"} {
		code, body = s.callJSON(http.MethodPatch, "/api/traveler/shipment-progress/"+shipmentID, traveler, "")
		s.Require().Equal(http.StatusOK, code, body)
		s.Equal(want, body["data"].(map[string]any)["status"])
	}

	code, body = s.callJSON(http.MethodPatch, "/api/shopper/confirm-delivery/"+shipmentID, shopper, "")
	s.Require().Equal(http.StatusOK, code, body)
	s.Equal("DELIVERED_TO_SHOPPER", body["data"].(map[string]any)["status"])

	code, body = s.callJSON(http.MethodGet, "/api/users/get-me", traveler, "")
	s.Require().Equal(http.StatusOK, code, body)
	s.InDelta(50.0, body["data"].(map[string]any)["earnings"], 1e-9)

	review := `{"rating":5,"comment":"Careful and on time"}`
	code, body = s.callJSON(http.MethodPost, "/api/shopper/review-trip/"+travelerID, shopper, review)
	s.Require().Equal(http.StatusCreated, code, body)
	code, _ = s.callJSON(http.MethodPost, "/api/shopper/review-trip/"+travelerID, shopper, review)
	s.Equal(http.StatusBadRequest, code, "a second review of the same traveler is rejected")

	code, body = s.callJSON(http.MethodGet, "/api/trips/"+tripID, "", "")
	s.Require().Equal(http.StatusOK, code, body)
	s.EqualValues(5, body["data"].(map[string]any)["traveler"].(map[string]any)["averageRating"])
}

func (s *CompositionRootIntegrationTestSuite) TestAccessRules() {
	shopper, _ := s.signUp("Mona", "mona@example.com")
	other, _ := s.signUp("Omar", "omar@example.com")
	shipmentID := s.createShipment(shopper, time.Now().UTC().AddDate(0, 0, 20))

	code, _ := s.callJSON(http.MethodDelete, "/api/shopper/delete-shipment/"+shipmentID, other, "")
	s.Equal(http.StatusForbidden, code)

	code, _ = s.callJSON(http.MethodPatch, "/api/admin/shipments/"+shipmentID+"/moderate", shopper, "")
	s.Equal(http.StatusForbidden, code)

	code, _ = s.callJSON(http.MethodGet, "/api/users/get-all", shopper, "")
	s.Equal(http.StatusForbidden, code)

	code, _ = s.callJSON(http.MethodDelete, "/api/shipments/"+shipmentID, shopper, "")
	s.Equal(http.StatusNoContent, code)

	code, _ = s.callJSON(http.MethodGet, "/api/shipments/"+shipmentID, "", "")
	s.Equal(http.StatusNotFound, code)
}

func (s *CompositionRootIntegrationTestSuite) TestPasswordChangeRevokesOldTokens() {
	token, _ := s.signUp("Mona", "mona@example.com")

	// Tokens carry whole-second issue times, a change in the same second would not revoke them.
	time.Sleep(1500 * time.Millisecond)
	code, body := s.callJSON(http.MethodPatch, "/api/users/update-me", token, `{"password":"another-long-secret"}`)
	s.Require().Equal(http.StatusOK, code, body)
	fresh, ok := body["token"].(string)
	s.Require().True(ok, body)

	code, _ = s.callJSON(http.MethodGet, "/api/users/get-me", token, "")
	s.Equal(http.StatusUnauthorized, code)
	code, _ = s.callJSON(http.MethodGet, "/api/users/get-me", fresh, "")
	s.Equal(http.StatusOK, code)

	code, _ = s.callJSON(http.MethodPost, "/api/auth/login", "", `{"email":"mona@example.com","password":"correct-horse-battery"}`)
	s.Equal(http.StatusUnauthorized, code)
	code, body = s.callJSON(http.MethodPost, "/api/auth/login", "", `{"email":"mona@example.com","password":"another-long-secret"}`)
	s.Equal(http.StatusOK, code, body)
}
