package api

import (
	"github.com/bitmark-inc/casecounts/population"
	"github.com/bitmark-inc/casecounts/store"
)

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",

		1100: "unknown unit",
		1101: population.ErrPopulationNotFound.Error(),
		1102: population.ErrPopulationAmbiguous.Error(),

		1200: store.ErrNoSeries.Error(),
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters = errorJSON(1010)

	errorUnknownUnit         = errorJSON(1100)
	errorPopulationNotFound  = errorJSON(1101)
	errorPopulationAmbiguous = errorJSON(1102)

	errorSeriesNotFound = errorJSON(1200)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
