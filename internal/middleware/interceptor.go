package middleware

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/apperror"
	"github.com/fekuna/omnipos-backoffice-service/internal/i18n"
	"github.com/fekuna/omnipos-backoffice-service/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	RequestIDHeader      = "x-request-id"
	AcceptLanguageHeader = "accept-language"
)

type requestIDKey struct{}

// RequestID returns the id attached by ContextInterceptor, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if val := md.Get(key); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// ContextInterceptor attaches a request id to the context, taking the caller's
// x-request-id when present, and echoes it in the response header.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		id := firstMetadata(ctx, RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))
		return handler(context.WithValue(ctx, requestIDKey{}, id), req)
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("request_id", RequestID(ctx)),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch status.Code(err) {
		case codes.OK:
			log.Info("grpc request", fields...)
		case codes.Internal, codes.Unknown:
			log.Error("grpc request failed", append(fields, zap.Error(err))...)
		default:
			log.Warn("grpc request rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// RecoveryInterceptor turns a panicking handler into an Internal error.
func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// ErrorInterceptor converts application errors returned by handlers into gRPC
// statuses, localizing client-facing messages from accept-language.
func ErrorInterceptor(tr *i18n.Translator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, ToStatus(ctx, tr, err)
		}
		return resp, nil
	}
}

func ToStatus(ctx context.Context, tr *i18n.Translator, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, "internal error")
	}

	var code codes.Code
	switch appErr.Kind {
	case apperror.KindNotFound:
		code = codes.NotFound
	case apperror.KindValidation:
		code = codes.InvalidArgument
	default:
		return status.Error(codes.Internal, "internal error")
	}

	msg := appErr.Message
	if localized, ok := tr.Localize(appErr.MessageID, appErr.Params, firstMetadata(ctx, AcceptLanguageHeader)); ok {
		msg = localized
	}
	return status.Error(code, msg)
}
