package commands_test

import (
	"context"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/review"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/model/user"
	"crowdship/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) CountOpenByShopper(ctx context.Context, shopperID kernel.UUID) (int64, error) {
	args := m.Called(ctx, shopperID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) FindByShopperAndTraveler(
	ctx context.Context,
	shopperID, travelerID kernel.UUID,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, shopperID, travelerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) FindByTravelerAndShopper(
	ctx context.Context,
	travelerID, shopperID kernel.UUID,
) ([]*trip.Trip, error) {
	args := m.Called(ctx, travelerID, shopperID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trip.Trip), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsBySubjectAndReviewer(ctx context.Context, subjectID, reviewerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, subjectID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) RatingsOf(ctx context.Context, revieweeID kernel.UUID) ([]int, error) {
	args := m.Called(ctx, revieweeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*user.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	args := m.Called()
	return args.Get(0).(ports.ReviewRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Save(ctx context.Context, file ports.File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	args := m.Called(ctx, to, name, resetURL)
	return args.Error(0)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(userID kernel.UUID, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Parse(token string) (ports.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(ports.TokenClaims), args.Error(1)
}
