package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker dependency in
// read-side tests where tracking is irrelevant.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	getHandler  queries.GetOrderQueryHandler
	listHandler queries.ListOrdersQueryHandler
	orderRepo   *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.getHandler = queries.NewGetOrderQueryHandler(db)
	suite.listHandler = queries.NewListOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_ReturnsOrderWithItems() {
	testOrder := suite.seedOrder("user-1", order.Created, 2)

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(result.ID.IsEqual(testOrder.ID()))
	suite.Equal("user-1", result.UserID)
	suite.Equal("created", result.Status)
	suite.Len(result.Items, 2)
	for i, item := range result.Items {
		suite.True(item.ProductID.IsEqual(testOrder.Items()[i].ProductID()))
		suite.Equal(testOrder.Items()[i].Quantity(), item.Quantity)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_UnknownOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderQuery{}

	_, err := suite.getHandler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_EmptyDatabase_ReturnsEmptyPage() {
	query, err := queries.NewListOrdersQuery("", "", "", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.NotNil(result.Orders)
	suite.Empty(result.Orders)
	suite.Zero(result.Meta.Total)
	suite.Zero(result.Meta.TotalPages)
	suite.Empty(result.Meta.StatusCounts)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_NewestFirstPagination() {
	for range 5 {
		suite.seedOrder("user-1", order.Created, 1)
	}

	firstPage, err := queries.NewListOrdersQuery("", "", "", 1, 2)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), firstPage)
	suite.Require().NoError(err)
	suite.Len(result.Orders, 2)
	suite.Equal(int64(5), result.Meta.Total)
	suite.Equal(int64(3), result.Meta.TotalPages)
	suite.Equal(1, result.Meta.Page)
	suite.Equal(2, result.Meta.Limit)

	suite.False(result.Orders[0].CreatedAt.Before(result.Orders[1].CreatedAt))

	lastPage, err := queries.NewListOrdersQuery("", "", "", 3, 2)
	suite.Require().NoError(err)

	result, err = suite.listHandler.Handle(context.Background(), lastPage)
	suite.Require().NoError(err)
	suite.Len(result.Orders, 1)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_StatusFilter() {
	suite.seedOrder("user-1", order.Created, 1)
	suite.seedOrder("user-1", order.Confirmed, 1)
	suite.seedOrder("user-2", order.Cancelled, 1)
	suite.seedOrder("user-2", order.Cancelled, 1)

	query, err := queries.NewListOrdersQuery("cancelled", "", "", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Len(result.Orders, 2)
	suite.Equal(int64(2), result.Meta.Total)
	for _, summary := range result.Orders {
		suite.Equal("cancelled", summary.Status)
	}

	// Counts always describe the whole table, not the filtered page.
	suite.Equal(int64(1), result.Meta.StatusCounts["created"])
	suite.Equal(int64(1), result.Meta.StatusCounts["confirmed"])
	suite.Equal(int64(2), result.Meta.StatusCounts["cancelled"])
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_SortByCreatedAtAscending() {
	for range 3 {
		suite.seedOrder("user-1", order.Created, 1)
	}

	query, err := queries.NewListOrdersQuery("", "createdAt", "asc", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.Orders, 3)

	for i := 1; i < len(result.Orders); i++ {
		suite.False(result.Orders[i].CreatedAt.Before(result.Orders[i-1].CreatedAt))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_SortByUserID() {
	suite.seedOrder("carol", order.Created, 1)
	suite.seedOrder("alice", order.Created, 1)
	suite.seedOrder("bob", order.Created, 1)

	query, err := queries.NewListOrdersQuery("", "userId", "asc", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.Orders, 3)

	suite.Equal("alice", result.Orders[0].UserID)
	suite.Equal("bob", result.Orders[1].UserID)
	suite.Equal("carol", result.Orders[2].UserID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_SortByStatus() {
	suite.seedOrder("user-1", order.Created, 1)
	suite.seedOrder("user-1", order.Confirmed, 1)
	suite.seedOrder("user-1", order.Cancelled, 1)

	query, err := queries.NewListOrdersQuery("", "status", "desc", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result.Orders, 3)

	suite.Equal("created", result.Orders[0].Status)
	suite.Equal("confirmed", result.Orders[1].Status)
	suite.Equal("cancelled", result.Orders[2].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListOrders_StatusCountsCoverAllStatuses() {
	suite.seedOrder("user-1", order.Created, 1)
	suite.seedOrder("user-1", order.Confirmed, 1)
	suite.seedOrder("user-1", order.Deliveried, 1)
	suite.seedOrder("user-1", order.Cancelled, 1)

	query, err := queries.NewListOrdersQuery("", "", "", 1, 10)
	suite.Require().NoError(err)

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(4), result.Meta.Total)
	suite.Len(result.Meta.StatusCounts, 4)
	for _, status := range []string{"created", "confirmed", "deliveried", "cancelled"} {
		suite.Equal(int64(1), result.Meta.StatusCounts[status])
	}
}

func (suite *QueryHandlersIntegrationTestSuite) seedOrder(
	userID string,
	status order.Status,
	itemCount int,
) *order.Order {
	ctx := context.Background()

	items := make([]order.Item, 0, itemCount)
	for range itemCount {
		item, err := order.NewItem(kernel.NewUUID(), 1)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	testOrder, err := order.NewOrder(kernel.NewUUID(), userID, items)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	if status != order.Created {
		suite.Require().NoError(suite.orderRepo.UpdateStatus(ctx, testOrder.ID(), status))
	}

	return testOrder
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
