package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/ossinfo/pkg/inventory"
)

type jsonReport struct {
	ID           uuid.UUID     `json:"id"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Dependencies []Row         `json:"dependencies"`
	Failed       []jsonFailure `json:"failed,omitempty"`
}

type jsonFailure struct {
	Dependency string `json:"dependency"`
	Error      string `json:"error"`
}

func writeJSON(w io.Writer, r *inventory.Report, rows []Row) error {
	out := jsonReport{ID: r.ID, GeneratedAt: r.GeneratedAt, Dependencies: rows}
	for _, e := range r.Entries {
		if e.Err != nil {
			out.Failed = append(out.Failed, jsonFailure{Dependency: e.Input, Error: e.Err.Error()})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
