package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}

// callerID returns the authenticated user's id from the request context.
func callerID(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(CtxUserID).(primitive.ObjectID)
	return id, ok
}

// pathID parses the named mux path variable as an object id.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	hex := mux.Vars(r)[name]
	if hex == "" {
		return primitive.NilObjectID, fmt.Errorf("%s is required", name)
	}

	return primitive.ObjectIDFromHex(hex)
}
