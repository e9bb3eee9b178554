package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types mirror components/schemas in openapi.yaml.
type (
	Error struct {
		Code      string              `json:"code"`
		Message   string              `json:"message"`
		ProductID *openapi_types.UUID `json:"product_id,omitempty"`
	}

	CheckDeliveryRequest struct {
		Address string `json:"address"`
	}

	DeliveryQuote struct {
		Available   bool                `json:"available"`
		ZoneID      *openapi_types.UUID `json:"zoneId,omitempty"`
		Zone        *string             `json:"zone,omitempty"`
		DeliveryFee *Amount             `json:"delivery_fee,omitempty"`
		Message     string              `json:"message"`
	}

	CustomerInfo struct {
		Name    string               `json:"name"`
		Phone   string               `json:"phone"`
		Address string               `json:"address"`
		Email   *openapi_types.Email `json:"email,omitempty"`
	}

	NewOrderItem struct {
		ProductID openapi_types.UUID `json:"product_id"`
		Quantity  int                `json:"quantity"`
	}

	AcceptedQuote struct {
		ZoneID      openapi_types.UUID `json:"zoneId"`
		DeliveryFee Amount             `json:"delivery_fee"`
	}

	NewOrder struct {
		CustomerInfo  CustomerInfo   `json:"customer_info"`
		Items         []NewOrderItem `json:"items"`
		Notes         *string        `json:"notes,omitempty"`
		AcceptedQuote AcceptedQuote  `json:"accepted_quote"`
	}

	OrderItem struct {
		ProductID    openapi_types.UUID `json:"product_id"`
		ProductName  string             `json:"product_name"`
		ProductPrice Amount             `json:"product_price"`
		Quantity     int                `json:"quantity"`
		Subtotal     Amount             `json:"subtotal"`
	}

	Order struct {
		ID           openapi_types.UUID `json:"id"`
		CustomerInfo CustomerInfo       `json:"customer_info"`
		Items        []OrderItem        `json:"items"`
		ZoneID       openapi_types.UUID `json:"zoneId"`
		DeliveryFee  Amount             `json:"delivery_fee"`
		TotalAmount  Amount             `json:"total_amount"`
		Status       string             `json:"status"`
		Notes        string             `json:"notes"`
		CreatedAt    time.Time          `json:"created_at"`
		UpdatedAt    time.Time          `json:"updated_at"`
	}

	StatusUpdate struct {
		Status string `json:"status"`
	}

	NewDeliveryZone struct {
		Address     string  `json:"address"`
		Zone        *string `json:"zone,omitempty"`
		DeliveryFee Amount  `json:"delivery_fee"`
	}

	DeliveryZone struct {
		ID          openapi_types.UUID `json:"id"`
		Address     string             `json:"address"`
		Zone        string             `json:"zone"`
		DeliveryFee Amount             `json:"delivery_fee"`
		IsActive    bool               `json:"is_active"`
		CreatedAt   time.Time          `json:"created_at"`
	}
)

type CreateOrderParams struct {
	IdempotencyKey *string
}

type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

type ListDeliveryAddressesParams struct {
	Active *bool `form:"active,omitempty" json:"active,omitempty"`
}

// ServerInterface lists one method per operation in openapi.yaml.
type ServerInterface interface {
	// POST /api/check-delivery
	CheckDelivery(ctx echo.Context) error
	// POST /api/orders
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// GET /api/orders
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// GET /api/orders/{id}
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// PUT /api/orders/{id}
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// GET /api/delivery-addresses
	ListDeliveryAddresses(ctx echo.Context, params ListDeliveryAddressesParams) error
	// POST /api/delivery-addresses
	CreateDeliveryAddress(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path, query and header parameters before
// handing over to the ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CheckDelivery(ctx echo.Context) error {
	return w.Handler.CheckDelivery(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	if values, found := ctx.Request().Header[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		if n := len(values); n != 1 {
			return badParameter(fmt.Errorf("expected one value for Idempotency-Key, got %d", n))
		}

		var key string
		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return badParameter(fmt.Errorf("invalid format for parameter Idempotency-Key: %w", err))
		}
		params.IdempotencyKey = &key
	}

	return w.Handler.CreateOrder(ctx, params)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter(fmt.Errorf("invalid format for parameter status: %w", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) ListDeliveryAddresses(ctx echo.Context) error {
	var params ListDeliveryAddressesParams

	if err := runtime.BindQueryParameter("form", true, false, "active", ctx.QueryParams(), &params.Active); err != nil {
		return badParameter(fmt.Errorf("invalid format for parameter active: %w", err))
	}

	return w.Handler.ListDeliveryAddresses(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateDeliveryAddress(ctx echo.Context) error {
	return w.Handler.CreateDeliveryAddress(ctx)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, badParameter(fmt.Errorf("invalid format for parameter id: %w", err))
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group RegisterHandlers needs.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation. operatorOnly guards the routes
// that declare the operatorToken security scheme; validate runs after it so
// anonymous callers learn nothing about request shape.
func RegisterHandlers(router EchoRouter, si ServerInterface, operatorOnly, validate echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/check-delivery", w.CheckDelivery, validate)
	router.POST("/api/orders", w.CreateOrder, validate)
	router.GET("/api/orders", w.ListOrders, operatorOnly, validate)
	router.GET("/api/orders/:id", w.GetOrder, operatorOnly, validate)
	router.PUT("/api/orders/:id", w.UpdateOrderStatus, operatorOnly, validate)
	router.GET("/api/delivery-addresses", w.ListDeliveryAddresses, operatorOnly, validate)
	router.POST("/api/delivery-addresses", w.CreateDeliveryAddress, operatorOnly, validate)
}
