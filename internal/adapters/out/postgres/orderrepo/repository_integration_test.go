package orderrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError is required so unique index violations surface
	// as gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.SystemDTO{},
		&orderrepo.ChecklistDTO{},
		&orderrepo.ChecklistStepDTO{},
		&orderrepo.ChecklistCompletionDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("PO-1001")

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateExternalRef_ReturnsAlreadyExistsError() {
	ctx := context.Background()

	first := suite.createTestOrder("PO-2001")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Same external reference, different order id
	second := suite.createTestOrder("PO-2001")
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	var alreadyExistsErr *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExistsErr)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RestoresFullGraph() {
	ctx := context.Background()

	original, checklistID, stepIDs := suite.createTestOrderWithChecklist("PO-3001")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("PO-3001", retrieved.ExternalRef())
	suite.Equal("Dana Reeve", retrieved.CustomerName())
	suite.Equal(order.Ordered, retrieved.Status())
	suite.Equal(original.OrderDate().UTC(), retrieved.OrderDate().UTC())

	suite.Require().Len(retrieved.Systems(), 1)
	sys := retrieved.Systems()[0]
	suite.Equal("WS-ENG-014", sys.AssetName())
	suite.Equal("SN-77421", sys.SerialNumber())

	cl := sys.Checklist()
	suite.Require().NotNil(cl)
	suite.Equal(checklistID, cl.ID())
	suite.Require().Len(cl.Steps(), len(stepIDs))
	for i, stepID := range stepIDs {
		suite.Equal(stepID, cl.Steps()[i].ID())
	}
	suite.Empty(cl.Completions())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StepCompletionAndQACheck_Persisted() {
	ctx := context.Background()

	testOrder, checklistID, stepIDs := suite.createTestOrderWithChecklist("PO-4001")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	workerID := kernel.NewUUID()
	checkerID := kernel.NewUUID()
	at := time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

	suite.Require().NoError(testOrder.CompleteChecklistStep(
		checklistID, stepIDs[0], workerID, at, 45, "imaged from golden master"))
	suite.Require().NoError(testOrder.QACheckChecklistStep(
		checklistID, stepIDs[0], checkerID, at.Add(time.Hour)))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	cl, err := retrieved.ChecklistByID(checklistID)
	suite.Require().NoError(err)

	completion := cl.CompletionForStep(stepIDs[0])
	suite.Require().NotNil(completion)
	suite.Equal(workerID, completion.CompletedBy())
	suite.Equal(45, completion.TimeSpentMinutes())
	suite.Equal("imaged from golden master", completion.Notes())
	suite.Require().NotNil(completion.QACheckedBy())
	suite.Equal(checkerID, *completion.QACheckedBy())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusAndAssignment_Persisted() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("PO-5001")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	assignee := kernel.NewUUID()
	later := testOrder.UpdatedAt().Add(time.Hour)
	suite.Require().NoError(testOrder.AssignTo(assignee, later))
	suite.Require().NoError(testOrder.ChangeStatus(order.InProgress, later))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrieved.Status())
	suite.Require().NotNil(retrieved.AssignedTo())
	suite.Equal(assignee, *retrieved.AssignedTo())
	suite.Equal(later.UTC(), retrieved.UpdatedAt().UTC())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder("PO-6001")

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ConcurrentTransactions_SecondLoadSeesCommittedState() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("PO-8001")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	txA := suite.db.Begin()
	suite.Require().NoError(txA.Error)
	repoA := orderrepo.NewGormOrderRepository(txA, suite.tracker)

	loadedA, err := repoA.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// The first transaction now holds the row lock, so the second load can
	// only observe whatever state the first transaction commits.
	observed := make(chan order.Status, 1)
	go func() {
		txB := suite.db.Begin()
		defer txB.Rollback()
		repoB := orderrepo.NewGormOrderRepository(txB, suite.tracker)
		loadedB, gErr := repoB.Get(ctx, testOrder.ID())
		if gErr != nil {
			observed <- order.UnknownStatus
			return
		}
		observed <- loadedB.Status()
	}()

	suite.Require().NoError(loadedA.ChangeStatus(order.InProgress, loadedA.UpdatedAt().Add(time.Minute)))
	suite.Require().NoError(repoA.Update(ctx, loadedA))
	suite.Require().NoError(txA.Commit().Error)

	suite.Equal(order.InProgress, <-observed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByChecklist_ResolvesOwningOrder() {
	ctx := context.Background()

	testOrder, checklistID, _ := suite.createTestOrderWithChecklist("PO-7001")
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByChecklist(ctx, checklistID)
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByChecklist_UnknownChecklist_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByChecklist(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// createTestOrder creates a basic order with a single system and no checklist.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(externalRef string) *order.Order {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		externalRef,
		"Dana Reeve",
		"dana.reeve@example.com",
		"Engineering",
		now,
		order.Delivery,
		"",
		2,
		"",
		now,
	)
	suite.Require().NoError(err)

	sys, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), fmt.Sprintf("WS-%s", externalRef), 0)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddSystem(sys))

	return testOrder
}

// createTestOrderWithChecklist creates an order whose single system carries a
// two step checklist instantiated from a template.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithChecklist(
	externalRef string,
) (*order.Order, kernel.UUID, []kernel.UUID) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		externalRef,
		"Dana Reeve",
		"dana.reeve@example.com",
		"Engineering",
		now,
		order.Shipping,
		"Building C, floor 2",
		3,
		"rush for onboarding",
		now,
	)
	suite.Require().NoError(err)

	sys, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), "WS-ENG-014", 0)
	suite.Require().NoError(err)
	sys.SetSerialNumber("SN-77421")

	imageStep, err := checklist.NewStep(kernel.NewUUID(), "image disk", 0, true, 60, 2)
	suite.Require().NoError(err)
	labelStep, err := checklist.NewStep(kernel.NewUUID(), "apply asset label", 1, false, 5, 1)
	suite.Require().NoError(err)

	template, err := checklist.NewTemplate(
		kernel.NewUUID(), sys.SystemTypeID(), "workstation setup",
		[]checklist.Step{imageStep, labelStep})
	suite.Require().NoError(err)

	cl, err := template.Instantiate(kernel.NewUUID(), sys.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(sys.AttachChecklist(cl))
	suite.Require().NoError(testOrder.AddSystem(sys))

	return testOrder, cl.ID(), []kernel.UUID{imageStep.ID(), labelStep.ID()}
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
