package adaptor

import (
	"encoding/json"
	"net/http"

	"product-catalog/internal/dto/request"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperror.Validation(map[string]string{"body": "Invalid request body"})
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperror.Validation(map[string]string{name: "must be a valid UUID"})
	}
	return id, nil
}

// pageFromQuery reads page, size and sort. Malformed numbers fall back to the defaults.
func pageFromQuery(r *http.Request) request.PaginatedRequest {
	q := r.URL.Query()
	return request.PaginatedRequest{
		Page: utils.ParseInt(q.Get("page"), 0, 0),
		Size: utils.ParseInt(q.Get("size"), request.DefaultPageSize, 1),
		Sort: q.Get("sort"),
	}
}

func principal(r *http.Request) (*utils.Principal, error) {
	p, ok := utils.GetPrincipal(r.Context())
	if !ok {
		return nil, apperror.Unauthenticated()
	}
	return p, nil
}
