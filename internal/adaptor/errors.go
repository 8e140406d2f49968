package adaptor

import (
	"net/http"

	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError renders an AppError as-is; anything else is a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if appErr, ok := utils.AsAppError(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			log.Error(operation+" failed", zap.Error(err))
		} else {
			log.Warn(operation+" rejected", zap.String("code", appErr.Code), zap.String("reason", appErr.Message))
		}
		utils.ResponseError(w, appErr)
		return
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}
