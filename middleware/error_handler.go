package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/TravelTales/travel-claims-backend/errors"
	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/TravelTales/travel-claims-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler is the outermost boundary of the request pipeline. Every
// failure path — typed AppErrors, binding errors, raw errors, panics — is
// translated into a JSON body with an "error" key and an HTTP status. The
// process never dies on a request fault.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log := logger.GetLogger()
				log.Errorw("Panic recovered in request pipeline",
					"panic", r,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack_trace", string(debug.Stack()),
				)

				resp := types.ErrorResponse{Error: "Internal Server Error"}
				if gin.IsDebugging() {
					resp.Details = fmt.Sprintf("%v", r)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.HTTPStatus

			logFields := []interface{}{
				"error_type", string(appError.Type),
				"error_message", appError.Message,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"client_ip", c.ClientIP(),
			}
			if appError.Detail != "" {
				logFields = append(logFields, "error_detail", appError.Detail)
			}
			if appError.Raw != nil {
				logFields = append(logFields, "raw_error", appError.Raw.Error())
			}

			// Client input errors are part of normal operation, not faults.
			if appError.Type == errors.ValidationError || appError.Type == errors.NotFoundError {
				log.Infow("Request rejected", logFields...)
			} else {
				log.Errorw("Request failed", logFields...)
			}

			resp := types.ErrorResponse{Error: appError.Message}

			// Validation detail helps the caller correct the request; anything
			// else is exposed only outside production.
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError) {
				resp.Details = appError.Detail
			}

			c.JSON(statusCode, resp)
			return
		}

		// Gin binding errors surface as client errors.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Infow("Request binding error", "error", err.Error(), "path", c.Request.URL.Path)

			resp := types.ErrorResponse{Error: "Failed to bind request"}
			if gin.IsDebugging() {
				resp.Details = err.Error()
			}
			c.JSON(http.StatusBadRequest, resp)
			return
		}

		// Unclassified errors: generic message to the caller, full detail in
		// server-side diagnostics only.
		log.Errorw("Unexpected server error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"client_ip", c.ClientIP(),
		)

		resp := types.ErrorResponse{Error: "Internal Server Error"}
		if gin.IsDebugging() {
			resp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}
