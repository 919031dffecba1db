package post

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName - полное имя gRPC-сервиса
const ServiceName = "post.PostService"

// Полные имена методов
const (
	PostService_CreatePost_FullMethodName  = "/post.PostService/CreatePost"
	PostService_GetPost_FullMethodName     = "/post.PostService/GetPost"
	PostService_ListPosts_FullMethodName   = "/post.PostService/ListPosts"
	PostService_UpdatePost_FullMethodName  = "/post.PostService/UpdatePost"
	PostService_DeletePost_FullMethodName  = "/post.PostService/DeletePost"
	PostService_ViewPost_FullMethodName    = "/post.PostService/ViewPost"
	PostService_LikePost_FullMethodName    = "/post.PostService/LikePost"
	PostService_AddComment_FullMethodName  = "/post.PostService/AddComment"
	PostService_GetComments_FullMethodName = "/post.PostService/GetComments"
)

// PostServiceServer - серверная часть сервиса постов
type PostServiceServer interface {
	CreatePost(context.Context, *CreatePostRequest) (*PostResponse, error)
	GetPost(context.Context, *GetPostRequest) (*PostResponse, error)
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error)
	DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error)
	ViewPost(context.Context, *ViewPostRequest) (*ViewPostResponse, error)
	LikePost(context.Context, *LikePostRequest) (*LikePostResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error)
	GetComments(context.Context, *GetCommentsRequest) (*GetCommentsResponse, error)
	mustEmbedUnimplementedPostServiceServer()
}

// UnimplementedPostServiceServer встраивается в реализации сервера
type UnimplementedPostServiceServer struct{}

func (UnimplementedPostServiceServer) CreatePost(context.Context, *CreatePostRequest) (*PostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreatePost not implemented")
}
func (UnimplementedPostServiceServer) GetPost(context.Context, *GetPostRequest) (*PostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPost not implemented")
}
func (UnimplementedPostServiceServer) ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListPosts not implemented")
}
func (UnimplementedPostServiceServer) UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdatePost not implemented")
}
func (UnimplementedPostServiceServer) DeletePost(context.Context, *DeletePostRequest) (*DeletePostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeletePost not implemented")
}
func (UnimplementedPostServiceServer) ViewPost(context.Context, *ViewPostRequest) (*ViewPostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ViewPost not implemented")
}
func (UnimplementedPostServiceServer) LikePost(context.Context, *LikePostRequest) (*LikePostResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LikePost not implemented")
}
func (UnimplementedPostServiceServer) AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddComment not implemented")
}
func (UnimplementedPostServiceServer) GetComments(context.Context, *GetCommentsRequest) (*GetCommentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetComments not implemented")
}
func (UnimplementedPostServiceServer) mustEmbedUnimplementedPostServiceServer() {}

// RegisterPostServiceServer регистрирует реализацию сервиса на gRPC-сервере
func RegisterPostServiceServer(s grpc.ServiceRegistrar, srv PostServiceServer) {
	s.RegisterService(&PostService_ServiceDesc, srv)
}

// unaryHandler связывает метод сервера с gRPC, декодируя запрос и пропуская его через перехватчики
func unaryHandler[Req any, Resp any](fullMethod string, call func(PostServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PostServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PostServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PostService_ServiceDesc - дескриптор сервиса постов
var PostService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreatePost", Handler: unaryHandler(PostService_CreatePost_FullMethodName, PostServiceServer.CreatePost)},
		{MethodName: "GetPost", Handler: unaryHandler(PostService_GetPost_FullMethodName, PostServiceServer.GetPost)},
		{MethodName: "ListPosts", Handler: unaryHandler(PostService_ListPosts_FullMethodName, PostServiceServer.ListPosts)},
		{MethodName: "UpdatePost", Handler: unaryHandler(PostService_UpdatePost_FullMethodName, PostServiceServer.UpdatePost)},
		{MethodName: "DeletePost", Handler: unaryHandler(PostService_DeletePost_FullMethodName, PostServiceServer.DeletePost)},
		{MethodName: "ViewPost", Handler: unaryHandler(PostService_ViewPost_FullMethodName, PostServiceServer.ViewPost)},
		{MethodName: "LikePost", Handler: unaryHandler(PostService_LikePost_FullMethodName, PostServiceServer.LikePost)},
		{MethodName: "AddComment", Handler: unaryHandler(PostService_AddComment_FullMethodName, PostServiceServer.AddComment)},
		{MethodName: "GetComments", Handler: unaryHandler(PostService_GetComments_FullMethodName, PostServiceServer.GetComments)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "post/post_service",
}

// PostServiceClient - клиент сервиса постов
type PostServiceClient interface {
	CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error)
	UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error)
	ViewPost(ctx context.Context, in *ViewPostRequest, opts ...grpc.CallOption) (*ViewPostResponse, error)
	LikePost(ctx context.Context, in *LikePostRequest, opts ...grpc.CallOption) (*LikePostResponse, error)
	AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*CommentResponse, error)
	GetComments(ctx context.Context, in *GetCommentsRequest, opts ...grpc.CallOption) (*GetCommentsResponse, error)
}

type postServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPostServiceClient создает клиент, который всегда отправляет сообщения в JSON
func NewPostServiceClient(cc grpc.ClientConnInterface) PostServiceClient {
	return &postServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *postServiceClient) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[PostResponse](ctx, c.cc, PostService_CreatePost_FullMethodName, in, opts)
}

func (c *postServiceClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[PostResponse](ctx, c.cc, PostService_GetPost_FullMethodName, in, opts)
}

func (c *postServiceClient) ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[ListPostsResponse](ctx, c.cc, PostService_ListPosts_FullMethodName, in, opts)
}

func (c *postServiceClient) UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[PostResponse](ctx, c.cc, PostService_UpdatePost_FullMethodName, in, opts)
}

func (c *postServiceClient) DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*DeletePostResponse, error) {
	return invoke[DeletePostResponse](ctx, c.cc, PostService_DeletePost_FullMethodName, in, opts)
}

func (c *postServiceClient) ViewPost(ctx context.Context, in *ViewPostRequest, opts ...grpc.CallOption) (*ViewPostResponse, error) {
	return invoke[ViewPostResponse](ctx, c.cc, PostService_ViewPost_FullMethodName, in, opts)
}

func (c *postServiceClient) LikePost(ctx context.Context, in *LikePostRequest, opts ...grpc.CallOption) (*LikePostResponse, error) {
	return invoke[LikePostResponse](ctx, c.cc, PostService_LikePost_FullMethodName, in, opts)
}

func (c *postServiceClient) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return invoke[CommentResponse](ctx, c.cc, PostService_AddComment_FullMethodName, in, opts)
}

func (c *postServiceClient) GetComments(ctx context.Context, in *GetCommentsRequest, opts ...grpc.CallOption) (*GetCommentsResponse, error) {
	return invoke[GetCommentsResponse](ctx, c.cc, PostService_GetComments_FullMethodName, in, opts)
}
