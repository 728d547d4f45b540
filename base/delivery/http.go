package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var badInputErrs = []error{
	domain.ErrBadParamInput,
	domain.ErrInvalidAddress,
	domain.ErrUnsupportedChain,
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = statusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}

func statusOf(err error, status int) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, e := range badInputErrs {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	return status
}
