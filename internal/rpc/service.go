// Package rpc serves banner sessions over gRPC. Messages are
// google.protobuf.Struct so the service needs no generated code.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/gacha-sim/internal/gacha"
	"github.com/xtding233/gacha-sim/internal/logger"
	"github.com/xtding233/gacha-sim/internal/session"
)

const ServiceName = "gachasim.v1.DrawService"

// DrawServer is the server API of the draw service.
type DrawServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Draw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetWant(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// DrawServiceDesc describes the service for grpc.Server.RegisterService.
var DrawServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DrawServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSession", Handler: unary("CreateSession", DrawServer.CreateSession)},
		{MethodName: "Draw", Handler: unary("Draw", DrawServer.Draw)},
		{MethodName: "SetWant", Handler: unary("SetWant", DrawServer.SetWant)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gachasim/v1/draw.proto",
}

type method func(DrawServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, m method) grpc.MethodHandler {
	full := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return m(srv.(DrawServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return m(srv.(DrawServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Service implements DrawServer over a session store.
type Service struct {
	store *session.Store
}

func NewService(store *session.Store) *Service {
	return &Service{store: store}
}

// Register installs the draw service and a health server reporting it as
// serving. The returned health server lets the caller flip status on shutdown.
func Register(s *grpc.Server, store *session.Store) *health.Server {
	s.RegisterService(&DrawServiceDesc, NewService(store))
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return hs
}

// CreateSessionReply is the payload of CreateSession.
type CreateSessionReply struct {
	Session string `json:"session"`
	Banner  string `json:"banner"`
}

// DrawReply is the payload of Draw and SetWant.
type DrawReply struct {
	Session  string         `json:"session"`
	Items    []session.Item `json:"items,omitempty"`
	Counters gacha.Counters `json:"counters"`
}

func (s *Service) CreateSession(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	kind, err := gacha.ParseBannerKind(stringField(in, "banner"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	id, err := s.store.Create(kind)
	if err != nil {
		return nil, toStatus(err)
	}
	logger.Debug("session created", "session", id, "banner", kind)
	return toStruct(CreateSessionReply{Session: id, Banner: string(kind)})
}

func (s *Service) Draw(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(in, "session")
	n, err := intField(in, "count", 1)
	if err != nil {
		return nil, err
	}
	outs, c, err := s.store.Draw(id, n)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(DrawReply{Session: id, Items: session.Items(outs, nil), Counters: c})
}

func (s *Service) SetWant(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(in, "session")
	slot, err := intField(in, "slot", -1)
	if err != nil {
		return nil, err
	}
	c, err := s.store.SetWant(id, slot)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(DrawReply{Session: id, Counters: c})
}

func stringField(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

// intField reads an integral number, falling back to def when absent.
func intField(in *structpb.Struct, key string, def int) (int, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return def, nil
	}
	f := v.GetNumberValue()
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
	return int(f), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrInvalidCount), errors.Is(err, gacha.ErrBannerConfig):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, session.ErrNoWant):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	logger.Error("draw service failure", "err", err)
	return status.Error(codes.Internal, "internal error")
}

func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v any) error {
	b, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
