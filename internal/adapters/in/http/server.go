package http

import (
	"context"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/zone"
	"storefront/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports the server drives. The command and query handlers satisfy
// them; tests substitute fakes.
type (
	CheckDeliveryHandler interface {
		Handle(ctx context.Context, query queries.CheckDeliveryQuery) (zone.Quote, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	SetOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetOrderStatusCommand) (*order.Order, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListDeliveryZonesHandler interface {
		Handle(ctx context.Context, query queries.ListDeliveryZonesQuery) ([]queries.DeliveryZoneView, error)
	}

	CreateDeliveryZoneHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryZoneCommand) (*zone.DeliveryZone, error)
	}
)

// Handlers groups the use cases behind the HTTP routes.
type Handlers struct {
	// Command handlers
	CreateOrder        CreateOrderHandler
	SetOrderStatus     SetOrderStatusHandler
	CreateDeliveryZone CreateDeliveryZoneHandler

	// Query handlers
	CheckDelivery     CheckDeliveryHandler
	ListOrders        ListOrdersHandler
	GetOrder          GetOrderHandler
	ListDeliveryZones ListDeliveryZonesHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
// metrics may be nil.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

var _ ServerInterface = (*Server)(nil)

// CheckDelivery handles POST /api/check-delivery - quotes delivery for an address.
func (s *Server) CheckDelivery(ctx echo.Context) error {
	var body CheckDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return badBody(err)
	}

	query, err := queries.NewCheckDeliveryQuery(body.Address)
	if err != nil {
		return err
	}

	quote, err := s.handlers.CheckDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := DeliveryQuote{Available: quote.Available, Message: quote.Message}
	if quote.Available {
		zoneID := quote.ZoneID.Bytes()
		fee := AmountOf(quote.Fee)
		response.ZoneID = &zoneID
		response.Zone = &quote.ZoneName
		response.DeliveryFee = &fee
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/orders - checks out a cart against an accepted quote.
// A replayed Idempotency-Key answers with the order the first request placed.
func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badBody(err)
	}

	cmd, err := createOrderCommand(body, params)
	if err != nil {
		return err
	}

	placed, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.checkoutSucceeded()

	return ctx.JSON(http.StatusCreated, orderResponse(queries.OrderViewOf(placed)))
}

// ListOrders handles GET /api/orders - newest first, optionally by status.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status string
	if params.Status != nil {
		status = *params.Status
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = orderResponse(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return badParameter(err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, orderResponse(view))
}

// UpdateOrderStatus handles PUT /api/orders/{id} - moves an order through its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return badBody(err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return badParameter(err)
	}

	requested, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, requested, principalFrom(ctx))
	if err != nil {
		return err
	}

	updated, err := s.handlers.SetOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.statusChanged(updated.Status().String())

	return ctx.JSON(http.StatusOK, orderResponse(queries.OrderViewOf(updated)))
}

// ListDeliveryAddresses handles GET /api/delivery-addresses.
func (s *Server) ListDeliveryAddresses(ctx echo.Context, params ListDeliveryAddressesParams) error {
	query := queries.NewListDeliveryZonesQuery(params.Active != nil && *params.Active)

	views, err := s.handlers.ListDeliveryZones.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]DeliveryZone, len(views))
	for i, v := range views {
		response[i] = zoneResponse(v)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateDeliveryAddress handles POST /api/delivery-addresses - registers a served zone.
func (s *Server) CreateDeliveryAddress(ctx echo.Context) error {
	var body NewDeliveryZone
	if err := ctx.Bind(&body); err != nil {
		return badBody(err)
	}

	fee, err := body.DeliveryFee.Money()
	if err != nil {
		return err
	}

	var name string
	if body.Zone != nil {
		name = *body.Zone
	}

	cmd, err := commands.NewCreateDeliveryZoneCommand(body.Address, name, fee)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateDeliveryZone.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, zoneResponse(queries.DeliveryZoneViewOf(created)))
}

func createOrderCommand(body NewOrder, params CreateOrderParams) (commands.CreateOrderCommand, error) {
	var email string
	if body.CustomerInfo.Email != nil {
		email = string(*body.CustomerInfo.Email)
	}

	customer, err := order.NewCustomer(body.CustomerInfo.Name, body.CustomerInfo.Phone, body.CustomerInfo.Address, email)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]services.CartItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, idErr := kernel.UUIDFromBytes(item.ProductID[:])
		if idErr != nil {
			return commands.CreateOrderCommand{}, badParameter(idErr)
		}
		items = append(items, services.CartItem{ProductID: productID, Quantity: item.Quantity})
	}

	zoneID, err := kernel.UUIDFromBytes(body.AcceptedQuote.ZoneID[:])
	if err != nil {
		return commands.CreateOrderCommand{}, badParameter(err)
	}

	fee, err := body.AcceptedQuote.DeliveryFee.Money()
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var notes, key string
	if body.Notes != nil {
		notes = *body.Notes
	}
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	return commands.NewCreateOrderCommand(
		customer,
		items,
		commands.AcceptedQuote{ZoneID: zoneID, Fee: fee},
		notes,
		key,
	)
}

func orderResponse(v queries.OrderView) Order {
	items := make([]OrderItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItem{
			ProductID:    item.ProductID.Bytes(),
			ProductName:  item.ProductName,
			ProductPrice: AmountFromDecimal(item.ProductPrice),
			Quantity:     item.Quantity,
			Subtotal:     AmountFromDecimal(item.Subtotal),
		}
	}

	customer := CustomerInfo{
		Name:    v.Customer.Name,
		Phone:   v.Customer.Phone,
		Address: v.Customer.Address,
	}
	if v.Customer.Email != "" {
		email := openapi_types.Email(v.Customer.Email)
		customer.Email = &email
	}

	return Order{
		ID:           v.ID.Bytes(),
		CustomerInfo: customer,
		Items:        items,
		ZoneID:       v.ZoneID.Bytes(),
		DeliveryFee:  AmountFromDecimal(v.DeliveryFee),
		TotalAmount:  AmountFromDecimal(v.TotalAmount),
		Status:       v.Status,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func zoneResponse(v queries.DeliveryZoneView) DeliveryZone {
	return DeliveryZone{
		ID:          v.ID.Bytes(),
		Address:     v.MatchKey,
		Zone:        v.Name,
		DeliveryFee: AmountFromDecimal(v.Fee),
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
	}
}
