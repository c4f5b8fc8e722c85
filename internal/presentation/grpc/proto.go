package grpc

// proto.go defines the gRPC server interface for bib/kyb/v1/kyb.proto. It
// stands in for buf-generated code; messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const kybServiceName = "bib.kyb.v1.KYBService"

// KYBServiceServer is the server API for KYBService.
type KYBServiceServer interface {
	RegisterMerchant(context.Context, *RegisterMerchantRequest) (*MerchantResponse, error)
	GetMerchant(context.Context, *GetMerchantRequest) (*MerchantResponse, error)
	GetMerchantStatus(context.Context, *GetMerchantStatusRequest) (*MerchantResponse, error)
	ReviewMerchant(context.Context, *ReviewMerchantRequest) (*MerchantResponse, error)
	MarkUnderReview(context.Context, *MarkUnderReviewRequest) (*MerchantResponse, error)
	VerifyDocument(context.Context, *VerifyDocumentRequest) (*MerchantResponse, error)
	RescreenMerchant(context.Context, *RescreenMerchantRequest) (*MerchantResponse, error)
	ScreenName(context.Context, *ScreenNameRequest) (*ScreenNameResponse, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*DashboardResponse, error)
	mustEmbedUnimplementedKYBServiceServer()
}

// UnimplementedKYBServiceServer provides forward-compatible default implementations.
type UnimplementedKYBServiceServer struct{}

func (UnimplementedKYBServiceServer) RegisterMerchant(context.Context, *RegisterMerchantRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterMerchant not implemented")
}
func (UnimplementedKYBServiceServer) GetMerchant(context.Context, *GetMerchantRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMerchant not implemented")
}
func (UnimplementedKYBServiceServer) GetMerchantStatus(context.Context, *GetMerchantStatusRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMerchantStatus not implemented")
}
func (UnimplementedKYBServiceServer) ReviewMerchant(context.Context, *ReviewMerchantRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewMerchant not implemented")
}
func (UnimplementedKYBServiceServer) MarkUnderReview(context.Context, *MarkUnderReviewRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkUnderReview not implemented")
}
func (UnimplementedKYBServiceServer) VerifyDocument(context.Context, *VerifyDocumentRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyDocument not implemented")
}
func (UnimplementedKYBServiceServer) RescreenMerchant(context.Context, *RescreenMerchantRequest) (*MerchantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RescreenMerchant not implemented")
}
func (UnimplementedKYBServiceServer) ScreenName(context.Context, *ScreenNameRequest) (*ScreenNameResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScreenName not implemented")
}
func (UnimplementedKYBServiceServer) GetDashboard(context.Context, *GetDashboardRequest) (*DashboardResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDashboard not implemented")
}
func (UnimplementedKYBServiceServer) mustEmbedUnimplementedKYBServiceServer() {}

// RegisterKYBServiceServer registers the KYBServiceServer with the gRPC server.
func RegisterKYBServiceServer(s grpclib.ServiceRegistrar, srv KYBServiceServer) {
	s.RegisterService(&_KYBService_serviceDesc, srv)
}

var _KYBService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: kybServiceName,
	HandlerType: (*KYBServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterMerchant", Handler: _KYBService_RegisterMerchant_Handler},
		{MethodName: "GetMerchant", Handler: _KYBService_GetMerchant_Handler},
		{MethodName: "GetMerchantStatus", Handler: _KYBService_GetMerchantStatus_Handler},
		{MethodName: "ReviewMerchant", Handler: _KYBService_ReviewMerchant_Handler},
		{MethodName: "MarkUnderReview", Handler: _KYBService_MarkUnderReview_Handler},
		{MethodName: "VerifyDocument", Handler: _KYBService_VerifyDocument_Handler},
		{MethodName: "RescreenMerchant", Handler: _KYBService_RescreenMerchant_Handler},
		{MethodName: "ScreenName", Handler: _KYBService_ScreenName_Handler},
		{MethodName: "GetDashboard", Handler: _KYBService_GetDashboard_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/kyb/v1/kyb.proto",
}

func _KYBService_RegisterMerchant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RegisterMerchantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).RegisterMerchant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/RegisterMerchant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).RegisterMerchant(ctx, req.(*RegisterMerchantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_GetMerchant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetMerchantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).GetMerchant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/GetMerchant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).GetMerchant(ctx, req.(*GetMerchantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_GetMerchantStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetMerchantStatusRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).GetMerchantStatus(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/GetMerchantStatus"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).GetMerchantStatus(ctx, req.(*GetMerchantStatusRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_ReviewMerchant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ReviewMerchantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).ReviewMerchant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/ReviewMerchant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).ReviewMerchant(ctx, req.(*ReviewMerchantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_MarkUnderReview_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(MarkUnderReviewRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).MarkUnderReview(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/MarkUnderReview"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).MarkUnderReview(ctx, req.(*MarkUnderReviewRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_VerifyDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(VerifyDocumentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).VerifyDocument(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/VerifyDocument"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).VerifyDocument(ctx, req.(*VerifyDocumentRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_RescreenMerchant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RescreenMerchantRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).RescreenMerchant(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/RescreenMerchant"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).RescreenMerchant(ctx, req.(*RescreenMerchantRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_ScreenName_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScreenNameRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).ScreenName(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/ScreenName"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).ScreenName(ctx, req.(*ScreenNameRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func _KYBService_GetDashboard_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetDashboardRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(KYBServiceServer).GetDashboard(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: "/" + kybServiceName + "/GetDashboard"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(KYBServiceServer).GetDashboard(ctx, req.(*GetDashboardRequest))
	}
	return interceptor(ctx, req, info, handler)
}
