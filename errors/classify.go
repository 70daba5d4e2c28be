package errors

import (
	"context"
	"errors"
	"net"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CodeOf classifies err into an ErrorCode. It understands gRPC status errors
// (Secret Manager), *googleapi.Error (REST APIs such as Cloud Tasks), smithy API
// errors (AWS), MinIO error responses, the Cloud Storage sentinels, context
// errors and network errors.
// A nil error has no code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrChecksumMismatch):
		return CodeInternal
	case errors.Is(err, storage.ErrObjectNotExist), errors.Is(err, storage.ErrBucketNotExist):
		return CodeNotFound
	}

	// googleapi errors may also expose an (empty) gRPC status, so they go first.
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return codeFromHTTPStatus(gerr.Code)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if code := codeFromAWS(apiErr.ErrorCode()); code != CodeUnknown {
			return code
		}
	}

	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) {
		if code := codeFromAWS(minioErr.Code); code != CodeUnknown {
			return code
		}
		return codeFromHTTPStatus(minioErr.StatusCode)
	}

	if s, ok := status.FromError(err); ok {
		return codeFromGRPC(s.Code())
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CodeTimeout
		}
		return CodeNetwork
	}

	return CodeUnknown
}

// IsNotFound reports whether err means the secret, object, bucket or queue does not exist.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsPermissionDenied reports whether err is an authentication or authorization failure.
func IsPermissionDenied(err error) bool {
	code := CodeOf(err)
	return code == CodeForbidden || code == CodeUnauthorized
}

// IsInvalidInput reports whether err was caused by a missing or malformed argument.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == CodeInvalidInput
}

func codeFromHTTPStatus(code int) ErrorCode {
	switch code {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeAlreadyExists
	case http.StatusPreconditionFailed:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimit
	case http.StatusNotImplemented:
		return CodeNotImplemented
	case http.StatusServiceUnavailable:
		return CodeUnavailable
	case http.StatusGatewayTimeout:
		return CodeTimeout
	}
	if code >= http.StatusInternalServerError {
		return CodeInternal
	}
	return CodeUnknown
}

func codeFromGRPC(code codes.Code) ErrorCode {
	switch code {
	case codes.NotFound:
		return CodeNotFound
	case codes.AlreadyExists:
		return CodeAlreadyExists
	case codes.Aborted, codes.FailedPrecondition:
		return CodeConflict
	case codes.Unauthenticated:
		return CodeUnauthorized
	case codes.PermissionDenied:
		return CodeForbidden
	case codes.InvalidArgument, codes.OutOfRange:
		return CodeInvalidInput
	case codes.ResourceExhausted:
		return CodeRateLimit
	case codes.DeadlineExceeded:
		return CodeTimeout
	case codes.Canceled:
		return CodeCanceled
	case codes.Unimplemented:
		return CodeNotImplemented
	case codes.Unavailable:
		return CodeUnavailable
	case codes.Internal, codes.DataLoss:
		return CodeInternal
	default:
		return CodeUnknown
	}
}

func codeFromAWS(code string) ErrorCode {
	switch code {
	case "ResourceNotFoundException", "NoSuchKey", "NoSuchBucket", "NotFound":
		return CodeNotFound
	case "ResourceExistsException", "BucketAlreadyExists", "BucketAlreadyOwnedByYou":
		return CodeAlreadyExists
	case "AccessDeniedException", "AccessDenied", "Forbidden":
		return CodeForbidden
	case "UnrecognizedClientException", "InvalidAccessKeyId", "ExpiredToken",
		"ExpiredTokenException", "SignatureDoesNotMatch":
		return CodeUnauthorized
	case "InvalidParameterException", "InvalidRequestException", "ValidationException",
		"InvalidArgument", "InvalidBucketName":
		return CodeInvalidInput
	case "ThrottlingException", "TooManyRequestsException", "RequestLimitExceeded",
		"LimitExceededException", "SlowDown":
		return CodeRateLimit
	case "InternalServiceError", "InternalError":
		return CodeInternal
	case "ServiceUnavailable":
		return CodeUnavailable
	default:
		return CodeUnknown
	}
}
