package grpc

// proto.go defines the gRPC server interface derived from
// origination/v1/origination.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with
// the import from github.com/finncap/origination/api/gen/go/origination/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OriginationServiceServer is the server API for OriginationService.
type OriginationServiceServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdateFinancialProfile(context.Context, *UpdateFinancialProfileRequest) (*UpdateFinancialProfileResponse, error)
	CheckAffordability(context.Context, *CheckAffordabilityRequest) (*CheckAffordabilityResponse, error)
	RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error)
	VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error)
	StartChatSession(context.Context, *StartChatSessionRequest) (*StartChatSessionResponse, error)
	SendChatMessage(context.Context, *SendChatMessageRequest) (*SendChatMessageResponse, error)
	GetChatHistory(context.Context, *GetChatHistoryRequest) (*GetChatHistoryResponse, error)
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	UploadDocument(context.Context, *UploadDocumentRequest) (*UploadDocumentResponse, error)
	DownloadSanctionLetter(context.Context, *DownloadSanctionLetterRequest) (*DownloadSanctionLetterResponse, error)
	mustEmbedUnimplementedOriginationServiceServer()
}

// UnimplementedOriginationServiceServer provides forward-compatible default implementations.
type UnimplementedOriginationServiceServer struct{}

func (UnimplementedOriginationServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*AuthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedOriginationServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedOriginationServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedOriginationServiceServer) UpdateFinancialProfile(context.Context, *UpdateFinancialProfileRequest) (*UpdateFinancialProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateFinancialProfile not implemented")
}
func (UnimplementedOriginationServiceServer) CheckAffordability(context.Context, *CheckAffordabilityRequest) (*CheckAffordabilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckAffordability not implemented")
}
func (UnimplementedOriginationServiceServer) RequestOTP(context.Context, *RequestOTPRequest) (*RequestOTPResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RequestOTP not implemented")
}
func (UnimplementedOriginationServiceServer) VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyOTP not implemented")
}
func (UnimplementedOriginationServiceServer) StartChatSession(context.Context, *StartChatSessionRequest) (*StartChatSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartChatSession not implemented")
}
func (UnimplementedOriginationServiceServer) SendChatMessage(context.Context, *SendChatMessageRequest) (*SendChatMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendChatMessage not implemented")
}
func (UnimplementedOriginationServiceServer) GetChatHistory(context.Context, *GetChatHistoryRequest) (*GetChatHistoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetChatHistory not implemented")
}
func (UnimplementedOriginationServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedOriginationServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedOriginationServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListApplications not implemented")
}
func (UnimplementedOriginationServiceServer) UploadDocument(context.Context, *UploadDocumentRequest) (*UploadDocumentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UploadDocument not implemented")
}
func (UnimplementedOriginationServiceServer) DownloadSanctionLetter(context.Context, *DownloadSanctionLetterRequest) (*DownloadSanctionLetterResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DownloadSanctionLetter not implemented")
}
func (UnimplementedOriginationServiceServer) mustEmbedUnimplementedOriginationServiceServer() {}

// RegisterOriginationServiceServer registers the OriginationServiceServer with the gRPC server.
func RegisterOriginationServiceServer(s *grpclib.Server, srv OriginationServiceServer) {
	s.RegisterService(&_OriginationService_serviceDesc, srv)
}

var _OriginationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "origination.v1.OriginationService",
	HandlerType: (*OriginationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterUser", Handler: _OriginationService_RegisterUser_Handler},
		{MethodName: "Login", Handler: _OriginationService_Login_Handler},
		{MethodName: "GetProfile", Handler: _OriginationService_GetProfile_Handler},
		{MethodName: "UpdateFinancialProfile", Handler: _OriginationService_UpdateFinancialProfile_Handler},
		{MethodName: "CheckAffordability", Handler: _OriginationService_CheckAffordability_Handler},
		{MethodName: "RequestOTP", Handler: _OriginationService_RequestOTP_Handler},
		{MethodName: "VerifyOTP", Handler: _OriginationService_VerifyOTP_Handler},
		{MethodName: "StartChatSession", Handler: _OriginationService_StartChatSession_Handler},
		{MethodName: "SendChatMessage", Handler: _OriginationService_SendChatMessage_Handler},
		{MethodName: "GetChatHistory", Handler: _OriginationService_GetChatHistory_Handler},
		{MethodName: "SubmitApplication", Handler: _OriginationService_SubmitApplication_Handler},
		{MethodName: "GetApplication", Handler: _OriginationService_GetApplication_Handler},
		{MethodName: "ListApplications", Handler: _OriginationService_ListApplications_Handler},
		{MethodName: "UploadDocument", Handler: _OriginationService_UploadDocument_Handler},
		{MethodName: "DownloadSanctionLetter", Handler: _OriginationService_DownloadSanctionLetter_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _OriginationService_RegisterUser_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RegisterUserRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).RegisterUser(ctx, req)
}

func _OriginationService_Login_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(LoginRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).Login(ctx, req)
}

func _OriginationService_GetProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).GetProfile(ctx, req)
}

func _OriginationService_UpdateFinancialProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(UpdateFinancialProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).UpdateFinancialProfile(ctx, req)
}

func _OriginationService_CheckAffordability_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(CheckAffordabilityRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).CheckAffordability(ctx, req)
}

func _OriginationService_RequestOTP_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RequestOTPRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).RequestOTP(ctx, req)
}

func _OriginationService_VerifyOTP_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(VerifyOTPRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).VerifyOTP(ctx, req)
}

func _OriginationService_StartChatSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(StartChatSessionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).StartChatSession(ctx, req)
}

func _OriginationService_SendChatMessage_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(SendChatMessageRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).SendChatMessage(ctx, req)
}

func _OriginationService_GetChatHistory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetChatHistoryRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).GetChatHistory(ctx, req)
}

func _OriginationService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(SubmitApplicationRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).SubmitApplication(ctx, req)
}

func _OriginationService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetApplicationRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).GetApplication(ctx, req)
}

func _OriginationService_ListApplications_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListApplicationsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).ListApplications(ctx, req)
}

func _OriginationService_UploadDocument_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(UploadDocumentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).UploadDocument(ctx, req)
}

func _OriginationService_DownloadSanctionLetter_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(DownloadSanctionLetterRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(OriginationServiceServer).DownloadSanctionLetter(ctx, req)
}
