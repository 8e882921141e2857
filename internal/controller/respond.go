package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/errs"
)

// RespondError maps the error taxonomy onto HTTP statuses: validation 422,
// not-found 404, forbidden 403, state conflicts 409. Callers that need a
// different conflict status (the submission route uses 400) check for the
// conflict themselves before falling back here.
func RespondError(ctx *gin.Context, err error) {
	switch {
	case errs.IsValidation(err):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Validation failed", Details: []string{err.Error()}})
	case errors.Is(err, errs.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "You are not allowed to perform this action"})
	case errs.IsStateConflict(err):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}

// Pagination reads page/per_page query parameters with the usual defaults.
func Pagination(ctx *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(ctx.DefaultQuery("per_page", "15"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	return page, perPage
}
