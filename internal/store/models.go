package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// File identifies one uploaded source document. Filename and Fingerprint are
// each globally unique: re-uploading the same filename refreshes the record,
// and a byte-identical file under a new name trips the fingerprint index.
type File struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	Fingerprint string    `json:"fingerprint"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Check is one transaction group extracted from a sheet. Identifier is the
// raw marker text and is unique across the whole store, so a check seen in a
// second upload (even of a different file) resolves to the same record.
// OccurredAt and OperationKind are optional: a marker without a parseable
// date stores NULL, never an error.
type Check struct {
	ID            uuid.UUID          `json:"id"`
	Identifier    string             `json:"check_identifier"`
	OccurredAt    pgtype.Timestamptz `json:"occurred_at"`
	OperationKind pgtype.Text        `json:"operation_kind"`
	FileID        uuid.UUID          `json:"file_id"`
}

// Product is one line item under a check. No two products share the same
// (check, name) pair; quantity and price default to zero and are never
// negative.
type Product struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int64     `json:"quantity"`
	Price    float64   `json:"price"`
	CheckID  uuid.UUID `json:"check_id"`
}

// TopProduct is one entry of the top-sellers ranking: a product name and its
// quantity summed across all checks.
type TopProduct struct {
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}
