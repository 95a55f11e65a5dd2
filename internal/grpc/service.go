package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified name of the catalog service
const ServiceName = "showshelf.v1.Catalog"

// catalogProtoFile names the descriptor registered for reflection
const catalogProtoFile = "showshelf/v1/catalog.proto"

const (
	listShowsMethod    = "/" + ServiceName + "/ListShows"
	listEpisodesMethod = "/" + ServiceName + "/ListEpisodes"
)

// CatalogServer is the server API of showshelf.v1.Catalog.
// Requests and responses are well-known protobuf types, so no generated code is needed.
type CatalogServer interface {
	// ListShows takes {"query": string} and returns one struct per matching show.
	ListShows(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	// ListEpisodes takes {"show_id": number, "query": string} and returns one struct per matching episode.
	ListEpisodes(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

// CatalogServiceDesc describes showshelf.v1.Catalog for grpc.Server.RegisterService
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListShows", Handler: listShowsHandler},
		{MethodName: "ListEpisodes", Handler: listEpisodesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: catalogProtoFile,
}

// The descriptor is built by hand and registered globally so reflection
// clients can describe the service and its well-known message types.
func init() {
	fd, err := protodesc.NewFile(catalogFileDescriptor(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("grpc: invalid %s descriptor: %v", catalogProtoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("grpc: register %s: %v", catalogProtoFile, err))
	}
}

func catalogFileDescriptor() *descriptorpb.FileDescriptorProto {
	method := func(name string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(".google.protobuf.Struct"),
			OutputType: proto.String(".google.protobuf.ListValue"),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(catalogProtoFile),
		Package:    proto.String("showshelf.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("Catalog"),
			Method: []*descriptorpb.MethodDescriptorProto{method("ListShows"), method("ListEpisodes")},
		}},
	}
}

// RegisterCatalogServer registers srv on s
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func listShowsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListShows(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listShowsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListShows(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listEpisodesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListEpisodes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listEpisodesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListEpisodes(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogClient is the client API of showshelf.v1.Catalog
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogClient wraps an established connection
func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

// ListShows calls showshelf.v1.Catalog/ListShows
func (c *CatalogClient) ListShows(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listShowsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEpisodes calls showshelf.v1.Catalog/ListEpisodes
func (c *CatalogClient) ListEpisodes(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listEpisodesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
