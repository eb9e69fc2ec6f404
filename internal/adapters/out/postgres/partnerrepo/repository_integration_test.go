package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/partnerrepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/account"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// mockAggregateTracker is a no-op tracker for repository tests that do not
// exercise the unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	repo         *partnerrepo.GormPartnerRepository
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&partnerrepo.PartnerDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.EventDTO{},
		&shipmentrepo.ReviewDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = partnerrepo.NewGormPartnerRepository(db, &mockAggregateTracker{})
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_partners, shipments CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *PartnerRepositoryIntegrationTestSuite) zipcode(code string) kernel.Zipcode {
	zipcode, err := kernel.NewZipcode(code)
	suite.Require().NoError(err)
	return zipcode
}

func (suite *PartnerRepositoryIntegrationTestSuite) newPartner(
	email string, serviceable []kernel.Zipcode, maxCapacity int,
) *account.DeliveryPartner {
	credentials, err := account.NewCredentials(email, testPasswordHash)
	suite.Require().NoError(err)

	partner, err := account.RestoreDeliveryPartner(
		kernel.NewUUID(), "FastShip", credentials, serviceable, maxCapacity, 0, true,
	)
	suite.Require().NoError(err)
	return partner
}

// assignShipment persists a shipment assigned to the partner with the given
// latest status, so the partner's active count reflects it.
func (suite *PartnerRepositoryIntegrationTestSuite) assignShipment(
	partnerID kernel.UUID, status shipment.Status,
) {
	s, err := shipment.NewShipment(
		kernel.NewUUID(), "Espresso machine", 9.5, suite.zipcode("560068"),
		"customer@example.com", nil, kernel.NewUUID(),
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(s.AssignPartner(partnerID))

	origin := suite.zipcode("560001")
	placed := shipment.Placed
	_, err = s.AppendEvent(kernel.NewUUID(), s.CreatedAt(), &origin, &placed, "")
	suite.Require().NoError(err)

	if status != shipment.Placed {
		st := status
		_, err = s.AppendEvent(kernel.NewUUID(), s.CreatedAt().Add(time.Hour), nil, &st, "")
		suite.Require().NoError(err)
	}

	suite.Require().NoError(suite.shipmentRepo.Add(context.Background(), s))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	partner := suite.newPartner("fastship@example.com", []kernel.Zipcode{suite.zipcode("560068")}, 5)

	suite.Require().NoError(suite.repo.Add(ctx, partner))

	restored, err := suite.repo.Get(ctx, partner.ID())
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(partner.ID()))
	suite.Equal("FastShip", restored.Name())
	suite.Equal("fastship@example.com", restored.Credentials().Email())
	suite.Equal(5, restored.MaxCapacity())
	suite.Equal(0, restored.ActiveShipments())
	suite.True(restored.EmailVerified())
	suite.True(restored.CanServe(suite.zipcode("560068")))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_ActiveCountExcludesTerminalShipments() {
	ctx := context.Background()
	partner := suite.newPartner("fastship@example.com", []kernel.Zipcode{suite.zipcode("560068")}, 5)
	suite.Require().NoError(suite.repo.Add(ctx, partner))

	suite.assignShipment(partner.ID(), shipment.Placed)
	suite.assignShipment(partner.ID(), shipment.OutForDelivery)
	suite.assignShipment(partner.ID(), shipment.Delivered)
	suite.assignShipment(partner.ID(), shipment.Cancelled)

	restored, err := suite.repo.Get(ctx, partner.ID())
	suite.Require().NoError(err)
	suite.Equal(2, restored.ActiveShipments())
	suite.Equal(3, restored.AvailableCapacity())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetByEmail() {
	ctx := context.Background()
	partner := suite.newPartner("fastship@example.com", []kernel.Zipcode{suite.zipcode("560068")}, 5)
	suite.Require().NoError(suite.repo.Add(ctx, partner))

	restored, err := suite.repo.GetByEmail(ctx, "fastship@example.com")
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(partner.ID()))

	_, err = suite.repo.GetByEmail(ctx, "nobody@example.com")
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetCandidatesForDestination() {
	ctx := context.Background()
	destination := suite.zipcode("560068")

	serving := suite.newPartner("first@example.com", []kernel.Zipcode{destination}, 5)
	alsoServing := suite.newPartner("second@example.com", []kernel.Zipcode{destination, suite.zipcode("110001")}, 3)
	elsewhere := suite.newPartner("elsewhere@example.com", []kernel.Zipcode{suite.zipcode("110001")}, 5)

	suite.Require().NoError(suite.repo.Add(ctx, serving))
	suite.Require().NoError(suite.repo.Add(ctx, alsoServing))
	suite.Require().NoError(suite.repo.Add(ctx, elsewhere))

	candidates, err := suite.repo.GetCandidatesForDestination(ctx, destination)
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 2)
	suite.True(candidates[0].ID().IsEqual(serving.ID()))
	suite.True(candidates[1].ID().IsEqual(alsoServing.ID()))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetCandidatesForDestination_ExcludesUnverified() {
	ctx := context.Background()
	destination := suite.zipcode("560068")

	credentials, err := account.NewCredentials("unverified@example.com", testPasswordHash)
	suite.Require().NoError(err)
	unverified, err := account.NewDeliveryPartner(
		kernel.NewUUID(), "SlowShip", credentials, []kernel.Zipcode{destination}, 5,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, unverified))

	candidates, err := suite.repo.GetCandidatesForDestination(ctx, destination)
	suite.Require().NoError(err)
	suite.Empty(candidates)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_PersistsServiceableZipcodesAndCapacity() {
	ctx := context.Background()
	partner := suite.newPartner("fastship@example.com", []kernel.Zipcode{suite.zipcode("560068")}, 5)
	suite.Require().NoError(suite.repo.Add(ctx, partner))

	newZipcodes := []kernel.Zipcode{suite.zipcode("110001"), suite.zipcode("400001")}
	suite.Require().NoError(partner.UpdateServiceableZipcodes(newZipcodes))
	suite.Require().NoError(partner.UpdateMaxCapacity(10))
	suite.Require().NoError(suite.repo.Update(ctx, partner))

	restored, err := suite.repo.Get(ctx, partner.ID())
	suite.Require().NoError(err)
	suite.Equal(10, restored.MaxCapacity())
	suite.False(restored.CanServe(suite.zipcode("560068")))
	suite.True(restored.CanServe(suite.zipcode("110001")))
	suite.True(restored.CanServe(suite.zipcode("400001")))
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
