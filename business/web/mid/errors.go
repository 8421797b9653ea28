package mid

import (
	"context"
	"net/http"

	v1 "github.com/ardanlabs/ledger/business/web/v1"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way.
// Unexpected errors (status >= 500) are logged.
func Errors(log *zap.SugaredLogger) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Run the next handler and catch any propagated error.
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			// Log the error.
			log.Errorw("ERROR", "traceid", web.GetTraceID(ctx), "ERROR", err)

			// Build out the error response.
			var er v1.ErrorResponse
			var status int
			switch {
			case validate.IsFieldErrors(err):
				fieldErrors := validate.GetFieldErrors(err)
				er = v1.ErrorResponse{
					Error:  "data validation error",
					Fields: fieldErrors.Fields(),
				}
				status = http.StatusBadRequest

			case v1.IsRequestError(err):
				reqErr := v1.GetRequestError(err)
				er = v1.ErrorResponse{
					Error: reqErr.Error(),
				}
				status = reqErr.Status

			default:
				if ls, ok := v1.LedgerStatus(err); ok {
					er = v1.ErrorResponse{
						Error: err.Error(),
					}
					status = ls
					break
				}

				er = v1.ErrorResponse{
					Error: http.StatusText(http.StatusInternalServerError),
				}
				status = http.StatusInternalServerError
			}

			// Respond with the error back to the client.
			if err := web.Respond(ctx, w, er, status); err != nil {
				return err
			}

			// If we receive the shutdown err we need to return it
			// back to the base handler to shut down the service.
			if web.IsShutdown(err) {
				return err
			}

			// The error has been handled so we can stop propagating it.
			return nil
		}

		return h
	}

	return m
}
