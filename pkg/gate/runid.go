package gate

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/csvschema/pkg/logger"
)

// RunIDHeader carries the validation run id in both directions.
const RunIDHeader = "X-Validation-Run"

const maxRunIDLength = 128

var validRunID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RunID tags every request with a run id, reusing the caller's when it is
// well formed. The id is echoed in RunIDHeader and attached to the context
// so every log line of the run carries it.
func RunID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RunIDHeader)
		if len(id) > maxRunIDLength || !validRunID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RunIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRunID(r.Context(), id)))
	})
}
