package backofficev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Product struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Price         string `json:"price"`
	StockQuantity int32  `json:"stock_quantity"`
	CategoryID    int64  `json:"category_id"`
	SupplierID    int64  `json:"supplier_id"`
}

type CreateProductRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Price         string `json:"price"`
	StockQuantity int32  `json:"stock_quantity"`
	CategoryID    int64  `json:"category_id"`
	SupplierID    int64  `json:"supplier_id"`
}

type GetProductRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateProductPriceRequest struct {
	ProductID int64  `json:"product_id"`
	Price     string `json:"price"`
}

type StockMovement struct {
	MovementID     int64  `json:"movement_id"`
	ProductID      int64  `json:"product_id"`
	MovementType   string `json:"movement_type"`
	QuantityChange int32  `json:"quantity_change"`
	QuantityAfter  int32  `json:"quantity_after"`
	ReferenceType  string `json:"reference_type,omitempty"`
	ReferenceID    int64  `json:"reference_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type ListMovementsRequest struct {
	ProductID     int64  `json:"product_id,omitempty"`
	ReferenceType string `json:"reference_type,omitempty"`
	ReferenceID   int64  `json:"reference_id,omitempty"`
	Page          int32  `json:"page,omitempty"`
	PageSize      int32  `json:"page_size,omitempty"`
}

type ListMovementsResponse struct {
	Movements []StockMovement `json:"movements"`
	Total     int32           `json:"total"`
}

const (
	InventoryService_CreateProduct_FullMethodName      = "/backoffice.v1.InventoryService/CreateProduct"
	InventoryService_GetProduct_FullMethodName         = "/backoffice.v1.InventoryService/GetProduct"
	InventoryService_UpdateProductPrice_FullMethodName = "/backoffice.v1.InventoryService/UpdateProductPrice"
	InventoryService_ListMovements_FullMethodName      = "/backoffice.v1.InventoryService/ListMovements"
)

type InventoryServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*Product, error)
	GetProduct(context.Context, *GetProductRequest) (*Product, error)
	UpdateProductPrice(context.Context, *UpdateProductPriceRequest) (*Product, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
}

type UnimplementedInventoryServiceServer struct{}

func (UnimplementedInventoryServiceServer) CreateProduct(context.Context, *CreateProductRequest) (*Product, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}
func (UnimplementedInventoryServiceServer) GetProduct(context.Context, *GetProductRequest) (*Product, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}
func (UnimplementedInventoryServiceServer) UpdateProductPrice(context.Context, *UpdateProductPriceRequest) (*Product, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProductPrice not implemented")
}
func (UnimplementedInventoryServiceServer) ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMovements not implemented")
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "backoffice.v1.InventoryService",
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateProduct", Handler: unary(InventoryService_CreateProduct_FullMethodName, InventoryServiceServer.CreateProduct)},
		{MethodName: "GetProduct", Handler: unary(InventoryService_GetProduct_FullMethodName, InventoryServiceServer.GetProduct)},
		{MethodName: "UpdateProductPrice", Handler: unary(InventoryService_UpdateProductPrice_FullMethodName, InventoryServiceServer.UpdateProductPrice)},
		{MethodName: "ListMovements", Handler: unary(InventoryService_ListMovements_FullMethodName, InventoryServiceServer.ListMovements)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "backoffice/v1/inventory.json",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

type InventoryServiceClient interface {
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*Product, error)
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*Product, error)
	UpdateProductPrice(ctx context.Context, in *UpdateProductPriceRequest, opts ...grpc.CallOption) (*Product, error)
	ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error)
}

type inventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) InventoryServiceClient {
	return &inventoryServiceClient{cc}
}

func (c *inventoryServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, InventoryService_CreateProduct_FullMethodName, in, opts...)
}

func (c *inventoryServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, InventoryService_GetProduct_FullMethodName, in, opts...)
}

func (c *inventoryServiceClient) UpdateProductPrice(ctx context.Context, in *UpdateProductPriceRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, InventoryService_UpdateProductPrice_FullMethodName, in, opts...)
}

func (c *inventoryServiceClient) ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c.cc, InventoryService_ListMovements_FullMethodName, in, opts...)
}
