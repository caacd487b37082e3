package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Fyyrerde4xhsj/TapNow/utils"
)

// errValidation tells the caller the request was rejected and the response
// already written; handlers just return.
var errValidation = errors.New("request validation failed")

// ValidateJSON decodes the JSON payload into dst and runs the struct-tag
// validator. It expects Content-Type: application/json and bounds parsing
// with a short timeout.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Message: "Content-Type must be application/json"})
		return errValidation
	}
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	r = r.WithContext(ctx)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error(), Code: utils.CodeInvalidParams})
		return err
	}
	return nil
}
