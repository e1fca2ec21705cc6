package stream

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Authorizer validates the bearer token of an incoming request. A nil
// Authorizer leaves the server open.
type Authorizer interface {
	Authorize(ctx context.Context, token string) error
}

// JwtAuthorizer accepts HMAC-signed JWTs issued with a shared secret.
type JwtAuthorizer struct {
	secret []byte
}

func NewJwtAuthorizer(secret []byte) *JwtAuthorizer {
	return &JwtAuthorizer{secret: secret}
}

func (a *JwtAuthorizer) Authorize(_ context.Context, token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// RequestObserver receives the metadata of accepted requests, forwarded
// verbatim. Used for logging and metering.
type RequestObserver interface {
	ObserveRequest(md metadata.MD)
}

// MetadataKeyObserver logs the configured metadata keys of every request.
type MetadataKeyObserver struct {
	keys   []string
	logger *zap.Logger
}

func NewMetadataKeyObserver(keys []string, logger *zap.Logger) *MetadataKeyObserver {
	return &MetadataKeyObserver{keys: keys, logger: logger}
}

func (o *MetadataKeyObserver) ObserveRequest(md metadata.MD) {
	for _, key := range o.keys {
		if values := md.Get(key); len(values) > 0 {
			o.logger.Info("request metadata", zap.String("key", key), zap.Strings("values", values))
		}
	}
}

func bearerToken(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", false
	}
	token := strings.TrimPrefix(values[0], "Bearer ")
	return token, token != values[0]
}

func authorize(ctx context.Context, authorizer Authorizer) error {
	if authorizer == nil {
		return nil
	}
	token, ok := bearerToken(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing bearer token")
	}
	if err := authorizer.Authorize(ctx, token); err != nil {
		return status.Errorf(codes.Unauthenticated, "invalid bearer token: %s", err)
	}
	return nil
}

// UnaryAuthInterceptor rejects unauthenticated unary calls.
func UnaryAuthInterceptor(authorizer Authorizer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if err := authorize(ctx, authorizer); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamAuthInterceptor rejects unauthenticated streaming calls.
func StreamAuthInterceptor(authorizer Authorizer) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), authorizer); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}
