// Package http exposes the order board over a JSON API. Handlers translate
// payloads into commands and queries and never touch the domain directly.
package http

import (
	"log/slog"
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers populated by the gateway in front of this service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	changeStatusHandler    commands.ChangeOrderStatusCommandHandler
	assignOrderHandler     commands.AssignOrderCommandHandler
	bulkAssignHandler      commands.BulkAssignOrdersCommandHandler
	setPriorityHandler     commands.SetOrderPriorityCommandHandler
	completeStepHandler    commands.CompleteChecklistStepCommandHandler
	qaCheckStepHandler     commands.QACheckStepCommandHandler
	listOrdersHandler      queries.ListOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getOrderSystemsHandler queries.GetOrderSystemsQueryHandler
	logger                 *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	bulkAssignHandler commands.BulkAssignOrdersCommandHandler,
	setPriorityHandler commands.SetOrderPriorityCommandHandler,
	completeStepHandler commands.CompleteChecklistStepCommandHandler,
	qaCheckStepHandler commands.QACheckStepCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderSystemsHandler queries.GetOrderSystemsQueryHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		createOrderHandler:     createOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		assignOrderHandler:     assignOrderHandler,
		bulkAssignHandler:      bulkAssignHandler,
		setPriorityHandler:     setPriorityHandler,
		completeStepHandler:    completeStepHandler,
		qaCheckStepHandler:     qaCheckStepHandler,
		listOrdersHandler:      listOrdersHandler,
		getOrderHandler:        getOrderHandler,
		getOrderSystemsHandler: getOrderSystemsHandler,
		logger:                 logger,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/bulk-assign", s.BulkAssignOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/systems", s.GetOrderSystems)
	api.PATCH("/orders/:orderID/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderID/complete", s.CompleteOrder)
	api.PATCH("/orders/:orderID/assignee", s.AssignOrder)
	api.PATCH("/orders/:orderID/priority", s.SetOrderPriority)

	api.POST("/checklists/:checklistID/steps/:stepID/complete", s.CompleteChecklistStep)
	api.POST("/checklists/:checklistID/steps/:stepID/qa-check", s.QACheckStep)
}

// actorFromRequest builds the acting identity from the gateway headers.
func actorFromRequest(ctx echo.Context) (actor.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	if rawID == "" {
		return actor.Actor{}, errs.NewValueIsRequiredError(HeaderUserID + " header")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserID+" header", err)
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// ListOrders handles GET /api/v1/orders - lists board rows with optional
// status, assignee, unassigned and search filters.
func (s *Server) ListOrders(ctx echo.Context) error {
	filter := queries.ListOrdersFilter{
		Search: ctx.QueryParam("search"),
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return s.respondError(ctx, err)
		}
		filter.Status = &status
	}
	if raw := ctx.QueryParam("assignee"); raw != "" {
		assigneeID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.respondError(ctx, errs.NewValueIsInvalidErrorWithCause("assignee", err))
		}
		filter.AssigneeID = &assigneeID
	}
	if ctx.QueryParam("unassigned") == "true" {
		filter.Unassigned = true
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		response = append(response, orderSummaryFrom(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - registers an order from the
// upstream commerce system. Replays of the same external reference are
// answered with a conflict.
func (s *Server) CreateOrder(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	deliveryMethod, err := order.DeliveryMethodFromString(req.DeliveryMethod)
	if err != nil {
		return s.respondError(ctx, err)
	}

	specs := make([]services.SystemSpec, 0, len(req.Systems))
	for _, sys := range req.Systems {
		systemTypeID, sErr := kernel.UUIDFromBytes(sys.SystemTypeID[:])
		if sErr != nil {
			return s.respondError(ctx, sErr)
		}
		specs = append(specs, services.SystemSpec{
			SystemTypeID: systemTypeID,
			AssetName:    sys.AssetName,
			SerialNumber: sys.SerialNumber,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.ExternalRef,
		req.CustomerName,
		req.Email,
		req.Department,
		req.OrderDate,
		deliveryMethod,
		req.DeliveryAddress,
		req.Priority,
		req.Notes,
		specs,
		requestActor,
	)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/:orderID - returns the full card.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	card, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderCardFrom(card))
}

// GetOrderSystems handles GET /api/v1/orders/:orderID/systems - returns the
// systems with their full checklists.
func (s *Server) GetOrderSystems(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetOrderSystemsQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	systems, err := s.getOrderSystemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]SystemDetail, 0, len(systems))
	for _, sys := range systems {
		response = append(response, systemDetailFrom(sys))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderID/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderID/complete. Shorthand for
// a status change to complete, so the same completion gate applies.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, order.Complete, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.changeStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles PATCH /api/v1/orders/:orderID/assignee. A null
// assigneeId clears the assignment.
func (s *Server) AssignOrder(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req AssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var assigneeID *kernel.UUID
	if req.AssigneeID != nil {
		id, aErr := kernel.UUIDFromBytes(req.AssigneeID[:])
		if aErr != nil {
			return s.respondError(ctx, aErr)
		}
		assigneeID = &id
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, assigneeID, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderPriority handles PATCH /api/v1/orders/:orderID/priority.
func (s *Server) SetOrderPriority(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req SetPriorityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetOrderPriorityCommand(orderID, req.Priority, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.setPriorityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkAssignOrders handles POST /api/v1/orders/bulk-assign - assigns every
// order in the batch to one person, all or nothing.
func (s *Server) BulkAssignOrders(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req BulkAssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	assigneeID, err := kernel.UUIDFromBytes(req.AssigneeID[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, rawID := range req.OrderIDs {
		id, oErr := kernel.UUIDFromBytes(rawID[:])
		if oErr != nil {
			return s.respondError(ctx, oErr)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkAssignOrdersCommand(orderIDs, assigneeID, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.bulkAssignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteChecklistStep handles POST /api/v1/checklists/:checklistID/steps/:stepID/complete.
func (s *Server) CompleteChecklistStep(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	checklistID, err := pathUUID(ctx, "checklistID")
	if err != nil {
		return s.respondError(ctx, err)
	}
	stepID, err := pathUUID(ctx, "stepID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	var req CompleteStepRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCompleteChecklistStepCommand(
		checklistID, stepID, req.TimeSpentMinutes, req.Notes, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.completeStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QACheckStep handles POST /api/v1/checklists/:checklistID/steps/:stepID/qa-check.
func (s *Server) QACheckStep(ctx echo.Context) error {
	requestActor, err := actorFromRequest(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	checklistID, err := pathUUID(ctx, "checklistID")
	if err != nil {
		return s.respondError(ctx, err)
	}
	stepID, err := pathUUID(ctx, "stepID")
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewQACheckStepCommand(checklistID, stepID, requestActor)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.qaCheckStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
