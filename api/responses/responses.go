package responses

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/types"
)

// WriteData writes the success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.APIResponse{Data: data})
}

// WriteList writes a list payload with paging metadata attached.
func WriteList(w http.ResponseWriter, status int, data any, meta types.OffsetPageMeta) {
	writeJSON(w, status, types.APIResponse{Data: data, Meta: &meta})
}

// WriteError maps an error to the error envelope. Unknown errors surface as a
// 500 with a generic message; the real cause stays in the logs.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	appErr := apperrors.As(err)
	if appErr == nil {
		appErr = apperrors.Wrap(apperrors.CodeInternal, err, "unhandled error")
	}

	meta := apperrors.MetadataFor(appErr.Code())
	ctx = logg.WithField(ctx, "code", string(appErr.Code()))

	if meta.HTTPStatus >= http.StatusInternalServerError {
		dump := apperrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_constraint": dump.PGConstraint,
			"pg_detail":     dump.PGDetail,
		})
		logg.Error(ctx, "request failed", err)
	} else {
		ctx = logg.WithField(ctx, "error", err.Error())
		logg.Warn(ctx, "request rejected")
	}

	body := types.APIErrorResponse{Error: types.APIErrorBody{
		Code:    string(appErr.Code()),
		Message: meta.PublicMessage,
	}}
	if meta.DetailsAllowed {
		body.Error.Details = appErr.Details()
	}

	writeJSON(w, meta.HTTPStatus, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
