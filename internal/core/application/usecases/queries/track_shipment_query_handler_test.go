package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/application/usecases/queries"
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

// mockAggregateTracker is a no-op tracker for seeding test data through the
// write-side repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type TrackShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.TrackShipmentQueryHandler
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *TrackShipmentQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.EventDTO{}, &shipmentrepo.ReviewDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewTrackShipmentQueryHandler(db)
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
}

func (suite *TrackShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *TrackShipmentQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *TrackShipmentQueryHandlerTestSuite) zipcode(code string) kernel.Zipcode {
	zipcode, err := kernel.NewZipcode(code)
	suite.Require().NoError(err)
	return zipcode
}

func (suite *TrackShipmentQueryHandlerTestSuite) seedShipment() *shipment.Shipment {
	s, err := shipment.NewShipment(
		kernel.NewUUID(), "Espresso machine", 9.5, suite.zipcode("560068"),
		"customer@example.com", nil, kernel.NewUUID(),
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(s.AssignPartner(kernel.NewUUID()))

	origin := suite.zipcode("560001")
	placed := shipment.Placed
	_, err = s.AppendEvent(kernel.NewUUID(), s.CreatedAt(), &origin, &placed, "")
	suite.Require().NoError(err)

	inTransit := shipment.InTransit
	hub := suite.zipcode("560030")
	_, err = s.AppendEvent(kernel.NewUUID(), s.CreatedAt().Add(6*time.Hour), &hub, &inTransit, "")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.shipmentRepo.Add(context.Background(), s))
	return s
}

func (suite *TrackShipmentQueryHandlerTestSuite) TestHandle_ReturnsTimelineAndDerivedStatus() {
	s := suite.seedShipment()

	query, err := queries.NewTrackShipmentQuery(s.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(result.ShipmentID.IsEqual(s.ID()))
	suite.Equal("Espresso machine", result.Content)
	suite.Equal("560068", result.Destination)
	suite.Equal("in transit", result.Status)
	suite.Require().Len(result.Timeline, 2)
	suite.Equal("placed", result.Timeline[0].Status)
	suite.Equal("560001", result.Timeline[0].Location)
	suite.Equal("in transit", result.Timeline[1].Status)
	suite.Equal("560030", result.Timeline[1].Location)
	suite.Nil(result.Review)
}

func (suite *TrackShipmentQueryHandlerTestSuite) TestHandle_IncludesTagsWithInstructions() {
	s := suite.seedShipment()
	suite.Require().NoError(s.AddTag(shipment.TagFragile))
	suite.Require().NoError(suite.shipmentRepo.Update(context.Background(), s))

	query, err := queries.NewTrackShipmentQuery(s.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Tags, 1)
	suite.Equal("fragile", result.Tags[0].Name)
	suite.Equal(shipment.TagFragile.Instruction(), result.Tags[0].Instruction)
}

func (suite *TrackShipmentQueryHandlerTestSuite) TestHandle_IncludesReview() {
	s := suite.seedShipment()
	delivered := shipment.Delivered
	_, err := s.AppendEvent(kernel.NewUUID(), s.CreatedAt().Add(48*time.Hour), nil, &delivered, "")
	suite.Require().NoError(err)

	comment := "Arrived a day early"
	review, err := shipment.NewReview(kernel.NewUUID(), s.CreatedAt().Add(72*time.Hour), 5, &comment)
	suite.Require().NoError(err)
	suite.Require().NoError(s.AttachReview(review))
	suite.Require().NoError(suite.shipmentRepo.Update(context.Background(), s))

	query, err := queries.NewTrackShipmentQuery(s.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("delivered", result.Status)
	suite.Require().NotNil(result.Review)
	suite.Equal(5, result.Review.Rating)
	suite.Require().NotNil(result.Review.Comment)
	suite.Equal(comment, *result.Review.Comment)
}

func (suite *TrackShipmentQueryHandlerTestSuite) TestHandle_NonExistent_ReturnsNotFoundError() {
	query, err := queries.NewTrackShipmentQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackShipmentQueryHandlerTestSuite) TestHandle_UnconstructedQuery_Fails() {
	_, err := suite.handler.Handle(context.Background(), queries.TrackShipmentQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrTrackShipmentQueryIsNotConstructed)
}

func TestTrackShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackShipmentQueryHandlerTestSuite))
}
