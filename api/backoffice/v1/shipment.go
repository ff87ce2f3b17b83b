package backofficev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ShipmentItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int32  `json:"quantity"`
	UnitCost    string `json:"unit_cost"`
}

type Shipment struct {
	ShipmentID           int64          `json:"shipment_id"`
	SupplierID           int64          `json:"supplier_id"`
	ShipmentDate         string         `json:"shipment_date"`
	ExpectedDeliveryDate string         `json:"expected_delivery_date"`
	Status               string         `json:"status"`
	TotalCost            string         `json:"total_cost"`
	Items                []ShipmentItem `json:"items,omitempty"`
}

type CreateShipmentRequest struct {
	SupplierID           int64          `json:"supplier_id"`
	ShipmentDate         string         `json:"shipment_date,omitempty"`
	ExpectedDeliveryDate string         `json:"expected_delivery_date"`
	Status               string         `json:"status,omitempty"`
	TotalCost            string         `json:"total_cost"`
	Items                []ShipmentItem `json:"items"`
}

type GetShipmentRequest struct {
	ShipmentID int64 `json:"shipment_id"`
}

type ListShipmentsRequest struct {
	SupplierID int64  `json:"supplier_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Page       int32  `json:"page,omitempty"`
	PageSize   int32  `json:"page_size,omitempty"`
}

type ListShipmentsResponse struct {
	Shipments []Shipment `json:"shipments"`
	Total     int32      `json:"total"`
}

type UpdateShipmentRequest struct {
	ShipmentID           int64          `json:"shipment_id"`
	Status               *string        `json:"status,omitempty"`
	ExpectedDeliveryDate *string        `json:"expected_delivery_date,omitempty"`
	TotalCost            *string        `json:"total_cost,omitempty"`
	ReplaceItems         bool           `json:"replace_items,omitempty"`
	Items                []ShipmentItem `json:"items,omitempty"`
}

type DeleteShipmentRequest struct {
	ShipmentID int64 `json:"shipment_id"`
}

const (
	ShipmentService_CreateShipment_FullMethodName     = "/backoffice.v1.ShipmentService/CreateShipment"
	ShipmentService_GetShipment_FullMethodName        = "/backoffice.v1.ShipmentService/GetShipment"
	ShipmentService_GetShipmentDetails_FullMethodName = "/backoffice.v1.ShipmentService/GetShipmentDetails"
	ShipmentService_ListShipments_FullMethodName      = "/backoffice.v1.ShipmentService/ListShipments"
	ShipmentService_UpdateShipment_FullMethodName     = "/backoffice.v1.ShipmentService/UpdateShipment"
	ShipmentService_DeleteShipment_FullMethodName     = "/backoffice.v1.ShipmentService/DeleteShipment"
)

type ShipmentServiceServer interface {
	CreateShipment(context.Context, *CreateShipmentRequest) (*Shipment, error)
	GetShipment(context.Context, *GetShipmentRequest) (*Shipment, error)
	GetShipmentDetails(context.Context, *GetShipmentRequest) (*Shipment, error)
	ListShipments(context.Context, *ListShipmentsRequest) (*ListShipmentsResponse, error)
	UpdateShipment(context.Context, *UpdateShipmentRequest) (*Shipment, error)
	DeleteShipment(context.Context, *DeleteShipmentRequest) (*Empty, error)
}

type UnimplementedShipmentServiceServer struct{}

func (UnimplementedShipmentServiceServer) CreateShipment(context.Context, *CreateShipmentRequest) (*Shipment, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateShipment not implemented")
}
func (UnimplementedShipmentServiceServer) GetShipment(context.Context, *GetShipmentRequest) (*Shipment, error) {
	return nil, status.Error(codes.Unimplemented, "method GetShipment not implemented")
}
func (UnimplementedShipmentServiceServer) GetShipmentDetails(context.Context, *GetShipmentRequest) (*Shipment, error) {
	return nil, status.Error(codes.Unimplemented, "method GetShipmentDetails not implemented")
}
func (UnimplementedShipmentServiceServer) ListShipments(context.Context, *ListShipmentsRequest) (*ListShipmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListShipments not implemented")
}
func (UnimplementedShipmentServiceServer) UpdateShipment(context.Context, *UpdateShipmentRequest) (*Shipment, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateShipment not implemented")
}
func (UnimplementedShipmentServiceServer) DeleteShipment(context.Context, *DeleteShipmentRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteShipment not implemented")
}

var ShipmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "backoffice.v1.ShipmentService",
	HandlerType: (*ShipmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateShipment", Handler: unary(ShipmentService_CreateShipment_FullMethodName, ShipmentServiceServer.CreateShipment)},
		{MethodName: "GetShipment", Handler: unary(ShipmentService_GetShipment_FullMethodName, ShipmentServiceServer.GetShipment)},
		{MethodName: "GetShipmentDetails", Handler: unary(ShipmentService_GetShipmentDetails_FullMethodName, ShipmentServiceServer.GetShipmentDetails)},
		{MethodName: "ListShipments", Handler: unary(ShipmentService_ListShipments_FullMethodName, ShipmentServiceServer.ListShipments)},
		{MethodName: "UpdateShipment", Handler: unary(ShipmentService_UpdateShipment_FullMethodName, ShipmentServiceServer.UpdateShipment)},
		{MethodName: "DeleteShipment", Handler: unary(ShipmentService_DeleteShipment_FullMethodName, ShipmentServiceServer.DeleteShipment)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "backoffice/v1/shipment.json",
}

func RegisterShipmentServiceServer(s grpc.ServiceRegistrar, srv ShipmentServiceServer) {
	s.RegisterService(&ShipmentService_ServiceDesc, srv)
}

type ShipmentServiceClient interface {
	CreateShipment(ctx context.Context, in *CreateShipmentRequest, opts ...grpc.CallOption) (*Shipment, error)
	GetShipment(ctx context.Context, in *GetShipmentRequest, opts ...grpc.CallOption) (*Shipment, error)
	GetShipmentDetails(ctx context.Context, in *GetShipmentRequest, opts ...grpc.CallOption) (*Shipment, error)
	ListShipments(ctx context.Context, in *ListShipmentsRequest, opts ...grpc.CallOption) (*ListShipmentsResponse, error)
	UpdateShipment(ctx context.Context, in *UpdateShipmentRequest, opts ...grpc.CallOption) (*Shipment, error)
	DeleteShipment(ctx context.Context, in *DeleteShipmentRequest, opts ...grpc.CallOption) (*Empty, error)
}

type shipmentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewShipmentServiceClient(cc grpc.ClientConnInterface) ShipmentServiceClient {
	return &shipmentServiceClient{cc}
}

func (c *shipmentServiceClient) CreateShipment(ctx context.Context, in *CreateShipmentRequest, opts ...grpc.CallOption) (*Shipment, error) {
	return invoke[Shipment](ctx, c.cc, ShipmentService_CreateShipment_FullMethodName, in, opts...)
}

func (c *shipmentServiceClient) GetShipment(ctx context.Context, in *GetShipmentRequest, opts ...grpc.CallOption) (*Shipment, error) {
	return invoke[Shipment](ctx, c.cc, ShipmentService_GetShipment_FullMethodName, in, opts...)
}

func (c *shipmentServiceClient) GetShipmentDetails(ctx context.Context, in *GetShipmentRequest, opts ...grpc.CallOption) (*Shipment, error) {
	return invoke[Shipment](ctx, c.cc, ShipmentService_GetShipmentDetails_FullMethodName, in, opts...)
}

func (c *shipmentServiceClient) ListShipments(ctx context.Context, in *ListShipmentsRequest, opts ...grpc.CallOption) (*ListShipmentsResponse, error) {
	return invoke[ListShipmentsResponse](ctx, c.cc, ShipmentService_ListShipments_FullMethodName, in, opts...)
}

func (c *shipmentServiceClient) UpdateShipment(ctx context.Context, in *UpdateShipmentRequest, opts ...grpc.CallOption) (*Shipment, error) {
	return invoke[Shipment](ctx, c.cc, ShipmentService_UpdateShipment_FullMethodName, in, opts...)
}

func (c *shipmentServiceClient) DeleteShipment(ctx context.Context, in *DeleteShipmentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, ShipmentService_DeleteShipment_FullMethodName, in, opts...)
}
