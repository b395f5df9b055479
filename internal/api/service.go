package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "credbridge.CredentialService"

const (
	CredentialService_RegisterPublicKey_FullMethodName = "/" + ServiceName + "/RegisterPublicKey"
	CredentialService_ListPublicKeys_FullMethodName    = "/" + ServiceName + "/ListPublicKeys"
	CredentialService_RevokePublicKey_FullMethodName   = "/" + ServiceName + "/RevokePublicKey"
	CredentialService_CreateToken_FullMethodName       = "/" + ServiceName + "/CreateToken"
	CredentialService_LookupToken_FullMethodName       = "/" + ServiceName + "/LookupToken"
	CredentialService_RevokeToken_FullMethodName       = "/" + ServiceName + "/RevokeToken"
	CredentialService_RedeemToken_FullMethodName       = "/" + ServiceName + "/RedeemToken"
	CredentialService_RecordStatistic_FullMethodName   = "/" + ServiceName + "/RecordStatistic"
	CredentialService_ListStatistics_FullMethodName    = "/" + ServiceName + "/ListStatistics"
	CredentialService_Ping_FullMethodName              = "/" + ServiceName + "/Ping"
)

// CredentialServiceServer is implemented by the transport layer.
type CredentialServiceServer interface {
	RegisterPublicKey(context.Context, *RegisterPublicKeyRequest) (*RegisterPublicKeyResponse, error)
	ListPublicKeys(context.Context, *ListPublicKeysRequest) (*ListPublicKeysResponse, error)
	RevokePublicKey(context.Context, *RevokePublicKeyRequest) (*RevokePublicKeyResponse, error)
	CreateToken(context.Context, *CreateTokenRequest) (*CreateTokenResponse, error)
	LookupToken(context.Context, *LookupTokenRequest) (*LookupTokenResponse, error)
	RevokeToken(context.Context, *RevokeTokenRequest) (*RevokeTokenResponse, error)
	RedeemToken(context.Context, *RedeemTokenRequest) (*RedeemTokenResponse, error)
	RecordStatistic(context.Context, *RecordStatisticRequest) (*RecordStatisticResponse, error)
	ListStatistics(context.Context, *ListStatisticsRequest) (*ListStatisticsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func RegisterCredentialServiceServer(s grpc.ServiceRegistrar, srv CredentialServiceServer) {
	s.RegisterService(&CredentialService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, running
// it through the server's interceptor chain when there is one.
func unaryHandler[Req, Resp any](fullMethod string, call func(CredentialServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CredentialServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CredentialServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var CredentialService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RegisterPublicKey",
			Handler:    unaryHandler(CredentialService_RegisterPublicKey_FullMethodName, CredentialServiceServer.RegisterPublicKey),
		},
		{
			MethodName: "ListPublicKeys",
			Handler:    unaryHandler(CredentialService_ListPublicKeys_FullMethodName, CredentialServiceServer.ListPublicKeys),
		},
		{
			MethodName: "RevokePublicKey",
			Handler:    unaryHandler(CredentialService_RevokePublicKey_FullMethodName, CredentialServiceServer.RevokePublicKey),
		},
		{
			MethodName: "CreateToken",
			Handler:    unaryHandler(CredentialService_CreateToken_FullMethodName, CredentialServiceServer.CreateToken),
		},
		{
			MethodName: "LookupToken",
			Handler:    unaryHandler(CredentialService_LookupToken_FullMethodName, CredentialServiceServer.LookupToken),
		},
		{
			MethodName: "RevokeToken",
			Handler:    unaryHandler(CredentialService_RevokeToken_FullMethodName, CredentialServiceServer.RevokeToken),
		},
		{
			MethodName: "RedeemToken",
			Handler:    unaryHandler(CredentialService_RedeemToken_FullMethodName, CredentialServiceServer.RedeemToken),
		},
		{
			MethodName: "RecordStatistic",
			Handler:    unaryHandler(CredentialService_RecordStatistic_FullMethodName, CredentialServiceServer.RecordStatistic),
		},
		{
			MethodName: "ListStatistics",
			Handler:    unaryHandler(CredentialService_ListStatistics_FullMethodName, CredentialServiceServer.ListStatistics),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(CredentialService_Ping_FullMethodName, CredentialServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "credbridge/credential_service",
}

// CredentialServiceClient is the client stub. Every call is sent with the
// JSON content subtype.
type CredentialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCredentialServiceClient(cc grpc.ClientConnInterface) *CredentialServiceClient {
	return &CredentialServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CredentialServiceClient) RegisterPublicKey(ctx context.Context, in *RegisterPublicKeyRequest, opts ...grpc.CallOption) (*RegisterPublicKeyResponse, error) {
	return invoke[RegisterPublicKeyRequest, RegisterPublicKeyResponse](ctx, c.cc, CredentialService_RegisterPublicKey_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) ListPublicKeys(ctx context.Context, in *ListPublicKeysRequest, opts ...grpc.CallOption) (*ListPublicKeysResponse, error) {
	return invoke[ListPublicKeysRequest, ListPublicKeysResponse](ctx, c.cc, CredentialService_ListPublicKeys_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) RevokePublicKey(ctx context.Context, in *RevokePublicKeyRequest, opts ...grpc.CallOption) (*RevokePublicKeyResponse, error) {
	return invoke[RevokePublicKeyRequest, RevokePublicKeyResponse](ctx, c.cc, CredentialService_RevokePublicKey_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) CreateToken(ctx context.Context, in *CreateTokenRequest, opts ...grpc.CallOption) (*CreateTokenResponse, error) {
	return invoke[CreateTokenRequest, CreateTokenResponse](ctx, c.cc, CredentialService_CreateToken_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) LookupToken(ctx context.Context, in *LookupTokenRequest, opts ...grpc.CallOption) (*LookupTokenResponse, error) {
	return invoke[LookupTokenRequest, LookupTokenResponse](ctx, c.cc, CredentialService_LookupToken_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*RevokeTokenResponse, error) {
	return invoke[RevokeTokenRequest, RevokeTokenResponse](ctx, c.cc, CredentialService_RevokeToken_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) RedeemToken(ctx context.Context, in *RedeemTokenRequest, opts ...grpc.CallOption) (*RedeemTokenResponse, error) {
	return invoke[RedeemTokenRequest, RedeemTokenResponse](ctx, c.cc, CredentialService_RedeemToken_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) RecordStatistic(ctx context.Context, in *RecordStatisticRequest, opts ...grpc.CallOption) (*RecordStatisticResponse, error) {
	return invoke[RecordStatisticRequest, RecordStatisticResponse](ctx, c.cc, CredentialService_RecordStatistic_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) ListStatistics(ctx context.Context, in *ListStatisticsRequest, opts ...grpc.CallOption) (*ListStatisticsResponse, error) {
	return invoke[ListStatisticsRequest, ListStatisticsResponse](ctx, c.cc, CredentialService_ListStatistics_FullMethodName, in, opts)
}

func (c *CredentialServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, CredentialService_Ping_FullMethodName, in, opts)
}
