package commands_test

import (
	"strings"
	"testing"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() commands.Clock {
	return func() time.Time { return testNow }
}

func productParams(name string, price, weight float64) shipment.ProductParams {
	return shipment.ProductParams{
		Name:     name,
		Quantity: 1,
		Category: shipment.CategoryElectronics,
		Link:     "https://shop.example.com/" + name,
		Price:    price,
		Weight:   weight,
	}
}

func photoFile(name string) ports.File {
	return ports.File{Name: name + ".jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg")}
}

func newTestShipment(t *testing.T, shopperID kernel.UUID, weight float64, delivery time.Time) *shipment.Shipment {
	t.Helper()
	p := productParams("phone", 300, weight)
	p.Photo = "https://cdn.example.com/phone.jpg"
	product, err := shipment.NewProduct(p)
	require.NoError(t, err)
	route, err := kernel.RouteFromCodes("US", "EG")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), shopperID, []shipment.Product{product}, route, delivery, 50, testNow)
	require.NoError(t, err)
	return s
}

func newTestTrip(t *testing.T, travelerID kernel.UUID, departure time.Time, space float64) *trip.Trip {
	t.Helper()
	route, err := kernel.RouteFromCodes("US", "EG")
	require.NoError(t, err)
	tr, err := trip.NewTrip(kernel.NewUUID(), travelerID, route, departure, space, testNow)
	require.NoError(t, err)
	return tr
}

func newTestUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Mona", email, "hash", "https://cdn.example.com/avatar.png", testNow)
	require.NoError(t, err)
	return u
}

func restoreVerifiedUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := user.RestoreUser(user.RestoreParams{
		ID:           kernel.NewUUID(),
		Name:         "Omar",
		Email:        email,
		PasswordHash: "hash",
		Role:         user.RoleUser,
		Verified:     true,
		CreatedAt:    testNow,
	})
	require.NoError(t, err)
	return u
}
