package backofficev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type OrderItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type Order struct {
	OrderID         int64       `json:"order_id"`
	CustomerID      int64       `json:"customer_id"`
	OrderDate       string      `json:"order_date"`
	Status          string      `json:"status"`
	TotalAmount     string      `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderItem `json:"items,omitempty"`
}

type CreateOrderRequest struct {
	CustomerID      int64       `json:"customer_id"`
	Status          string      `json:"status,omitempty"`
	TotalAmount     string      `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderItem `json:"items"`
}

type GetOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type ListOrdersRequest struct {
	CustomerID int64  `json:"customer_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Page       int32  `json:"page,omitempty"`
	PageSize   int32  `json:"page_size,omitempty"`
}

type ListOrdersResponse struct {
	Orders []Order `json:"orders"`
	Total  int32   `json:"total"`
}

// UpdateOrderRequest patches an order. Absent fields are left unchanged; items
// are replaced only when replace_items is true.
type UpdateOrderRequest struct {
	OrderID         int64       `json:"order_id"`
	Status          *string     `json:"status,omitempty"`
	TotalAmount     *string     `json:"total_amount,omitempty"`
	ShippingAddress *string     `json:"shipping_address,omitempty"`
	ReplaceItems    bool        `json:"replace_items,omitempty"`
	Items           []OrderItem `json:"items,omitempty"`
}

type DeleteOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

const (
	OrderService_CreateOrder_FullMethodName     = "/backoffice.v1.OrderService/CreateOrder"
	OrderService_GetOrder_FullMethodName        = "/backoffice.v1.OrderService/GetOrder"
	OrderService_GetOrderDetails_FullMethodName = "/backoffice.v1.OrderService/GetOrderDetails"
	OrderService_ListOrders_FullMethodName      = "/backoffice.v1.OrderService/ListOrders"
	OrderService_UpdateOrder_FullMethodName     = "/backoffice.v1.OrderService/UpdateOrder"
	OrderService_DeleteOrder_FullMethodName     = "/backoffice.v1.OrderService/DeleteOrder"
)

type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*Order, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
	GetOrderDetails(context.Context, *GetOrderRequest) (*Order, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	UpdateOrder(context.Context, *UpdateOrderRequest) (*Order, error)
	DeleteOrder(context.Context, *DeleteOrderRequest) (*Empty, error)
}

// UnimplementedOrderServiceServer can be embedded to keep a server compiling
// when methods are added.
type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}
func (UnimplementedOrderServiceServer) GetOrder(context.Context, *GetOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}
func (UnimplementedOrderServiceServer) GetOrderDetails(context.Context, *GetOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrderDetails not implemented")
}
func (UnimplementedOrderServiceServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrders not implemented")
}
func (UnimplementedOrderServiceServer) UpdateOrder(context.Context, *UpdateOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateOrder not implemented")
}
func (UnimplementedOrderServiceServer) DeleteOrder(context.Context, *DeleteOrderRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteOrder not implemented")
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "backoffice.v1.OrderService",
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateOrder", Handler: unary(OrderService_CreateOrder_FullMethodName, OrderServiceServer.CreateOrder)},
		{MethodName: "GetOrder", Handler: unary(OrderService_GetOrder_FullMethodName, OrderServiceServer.GetOrder)},
		{MethodName: "GetOrderDetails", Handler: unary(OrderService_GetOrderDetails_FullMethodName, OrderServiceServer.GetOrderDetails)},
		{MethodName: "ListOrders", Handler: unary(OrderService_ListOrders_FullMethodName, OrderServiceServer.ListOrders)},
		{MethodName: "UpdateOrder", Handler: unary(OrderService_UpdateOrder_FullMethodName, OrderServiceServer.UpdateOrder)},
		{MethodName: "DeleteOrder", Handler: unary(OrderService_DeleteOrder_FullMethodName, OrderServiceServer.DeleteOrder)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "backoffice/v1/order.json",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

type OrderServiceClient interface {
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
	GetOrderDetails(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
	ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*Order, error)
	DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*Empty, error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc}
}

func (c *orderServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_CreateOrder_FullMethodName, in, opts...)
}

func (c *orderServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_GetOrder_FullMethodName, in, opts...)
}

func (c *orderServiceClient) GetOrderDetails(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_GetOrderDetails_FullMethodName, in, opts...)
}

func (c *orderServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, OrderService_ListOrders_FullMethodName, in, opts...)
}

func (c *orderServiceClient) UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_UpdateOrder_FullMethodName, in, opts...)
}

func (c *orderServiceClient) DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, OrderService_DeleteOrder_FullMethodName, in, opts...)
}
