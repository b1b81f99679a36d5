package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/egg-gacha/internal/egg"
	"github.com/xtding233/egg-gacha/internal/service"
	"github.com/xtding233/egg-gacha/pkg/logger"
)

const (
	ServiceName          = "eggs.v1.EggService"
	GenerateEggsMethod   = "/" + ServiceName + "/GenerateEggs"
	SimulateMethod       = "/" + ServiceName + "/Simulate"
	serviceMetadataProto = "eggs/v1/eggs.proto"
)

// EggService is the subset of service.EggService exposed over gRPC.
type EggService interface {
	Generate(ctx context.Context, req service.GenerateRequest) (service.Result, error)
	Simulate(ctx context.Context, req service.GenerateRequest, trials int) (egg.SimReport, error)
}

// EggServiceServer is the server API. Messages are google.protobuf.Struct
// documents using the same field names as the HTTP API.
type EggServiceServer interface {
	GenerateEggs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterEggServiceServer(s grpc.ServiceRegistrar, srv EggServiceServer) {
	s.RegisterService(&eggServiceDesc, srv)
}

var eggServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EggServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateEggs", Handler: generateEggsHandler},
		{MethodName: "Simulate", Handler: simulateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceMetadataProto,
}

func generateEggsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EggServiceServer).GenerateEggs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateEggsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EggServiceServer).GenerateEggs(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func simulateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EggServiceServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SimulateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EggServiceServer).Simulate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type eggServer struct {
	svc EggService
}

// wireRequest is the Struct payload for both methods.
type wireRequest struct {
	service.GenerateRequest
	Trials int `json:"trials,omitempty"`
}

type generateResponse struct {
	Tier      string        `json:"tier"`
	GachaType string        `json:"gachaType"`
	Count     int           `json:"count"`
	Eggs      []egg.Egg     `json:"eggs"`
	Cost      *service.Cost `json:"cost,omitempty"`
}

func (s *eggServer) GenerateEggs(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}
	res, err := s.svc.Generate(ctx, req.GenerateRequest)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(generateResponse{
		Tier:      res.Request.Tier.String(),
		GachaType: res.Request.GachaType.String(),
		Count:     len(res.Eggs),
		Eggs:      res.Eggs,
		Cost:      res.Cost,
	})
}

func (s *eggServer) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, err
	}
	rep, err := s.svc.Simulate(ctx, req.GenerateRequest, req.Trials)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(rep)
}

// maxExactSeed is the largest integer a Struct number holds exactly.
const maxExactSeed = 1 << 53

// decodeRequest maps the Struct onto wireRequest through its JSON form, so
// fractional or mistyped numbers are rejected like they are over HTTP.
// seed is decoded separately: larger seeds travel as decimal strings.
func decodeRequest(in *structpb.Struct) (wireRequest, error) {
	var req wireRequest
	fields := make(map[string]*structpb.Value, len(in.GetFields()))
	for k, v := range in.GetFields() {
		fields[k] = v
	}
	seedVal, hasSeed := fields["seed"]
	delete(fields, "seed")

	b, err := (&structpb.Struct{Fields: fields}).MarshalJSON()
	if err != nil {
		return req, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if hasSeed {
		seed, err := decodeSeed(seedVal)
		if err != nil {
			return req, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		}
		req.Seed = seed
	}
	return req, nil
}

func decodeSeed(v *structpb.Value) (*uint64, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if f < 0 || f > maxExactSeed || f != math.Trunc(f) {
			return nil, fmt.Errorf("seed %v must be an integer in [0, 2^53]; send larger seeds as a decimal string", f)
		}
		seed := uint64(f)
		return &seed, nil
	case *structpb.Value_StringValue:
		seed, err := strconv.ParseUint(k.StringValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed %q is not an unsigned 64-bit integer", k.StringValue)
		}
		return &seed, nil
	default:
		return nil, errors.New("seed must be a number or a decimal string")
	}
}

func encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := new(structpb.Struct)
	if err := out.UnmarshalJSON(b); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Errorf(codes.Internal, "generate eggs: %v", err)
	}
}

// NewServer builds a gRPC server with the egg service registered.
func NewServer(svc EggService, log *zap.Logger) *grpc.Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := grpc.NewServer(
		grpc.UnaryInterceptor(logger.UnaryServerInterceptor(log)),
	)
	RegisterEggServiceServer(s, &eggServer{svc: svc})
	return s
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(addr string, svc EggService, log *zap.Logger) (*grpc.Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(svc, log)
	go func() {
		log.Info("grpc server listening", zap.String("addr", addr))
		if err := s.Serve(lis); err != nil {
			log.Error("grpc server error", zap.Error(err))
		}
	}()

	return s, nil
}
