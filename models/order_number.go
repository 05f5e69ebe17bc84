package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber generates a human-facing order identifier of the form
// DCF-<unix millis>-<6 hex chars>. Uniqueness is probabilistic, not
// sequence-guaranteed; the column's unique index is the final arbiter.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("DCF-%d-%s", time.Now().UnixMilli(), suffix)
}
