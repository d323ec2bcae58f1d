package apperr

import "github.com/tuanvumaihuynh/product-catalog/pkg/zerror"

const (
	ValidationErrorCode      = "VALIDATION_FAILED"
	ProductNotFoundCode      = "PRODUCT_NOT_FOUND"
	ProductConflictCode      = "PRODUCT_CONFLICT"
	ProductImagesImmutable   = "PRODUCT_IMAGES_IMMUTABLE"
	InvalidPaginationCode    = "INVALID_PAGINATION"
	InternalErrorCode        = "INTERNAL_ERROR"
	TooManyRequestsErrorCode = "TOO_MANY_REQUESTS"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// ProductNotFoundErr is returned with a message naming the id or term that was looked up.
	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundCode, "product not found")

	// ProductConflictErr carries the database's description of the violated unique key.
	ProductConflictErr = zerror.NewConflict(ProductConflictCode, "product already exists")

	ImagesImmutableErr = zerror.NewBadRequest(ProductImagesImmutable, "product images cannot be changed after create")

	InvalidPaginationErr = zerror.NewBadRequest(InvalidPaginationCode, "invalid pagination")

	InternalErr = zerror.NewInternalServerError(InternalErrorCode, "Unexpected error, check server logs")

	TooManyRequestsErr = zerror.NewTooManyRequests(TooManyRequestsErrorCode, "too many requests")
)
