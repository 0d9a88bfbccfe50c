// Package ingest orchestrates the upload pipeline: extension gate, byte
// read, fingerprint, workbook decode, header location, segmentation, and the
// reconciliation of the resulting groups against the persistence layer.
//
// Reconciliation is look-up-then-create throughout. Records are never
// updated after creation (a check keeps its first-seen state; a repeated
// product is skipped), with one exception: re-uploading a filename refreshes
// that file's fingerprint and timestamp. The database's unique indexes back
// the lookups, so a race between concurrent uploads ends in a conflict
// error, not a duplicate.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/mkovtun/receiptd/internal/apperr"
	"github.com/mkovtun/receiptd/internal/excel"
	"github.com/mkovtun/receiptd/internal/logging"
	"github.com/mkovtun/receiptd/internal/store"

	"github.com/google/uuid"
)

// headerDataOffset is where the data region starts relative to the header
// row: the exports keep one subtitle row between the header and the first
// data row.
const headerDataOffset = 2

// Store is the persistence surface the pipeline reconciles against.
// *store.Store satisfies it; tests substitute an in-memory implementation.
type Store interface {
	FileByFilename(ctx context.Context, filename string) (*store.File, error)
	CreateFile(ctx context.Context, f store.File) error
	RefreshFile(ctx context.Context, id uuid.UUID, fingerprint string, processedAt time.Time) error

	CheckByIdentifier(ctx context.Context, identifier string) (*store.Check, error)
	CreateCheck(ctx context.Context, c store.Check) error

	ProductExists(ctx context.Context, checkID uuid.UUID, name string) (bool, error)
	CreateProduct(ctx context.Context, p store.Product) error
}

// Options configure a Service.
type Options struct {
	// Header controls header-row detection. Zero value means defaults.
	Header excel.HeaderConfig

	// MaxConcurrent bounds parallel uploads (default 5).
	MaxConcurrent int

	// MaxWait is how long an upload waits for a free slot (default 30s).
	MaxWait time.Duration
}

// Service runs the ingestion pipeline.
type Service struct {
	store   Store
	header  excel.HeaderConfig
	limiter *limiter
}

// NewService creates an ingestion service over st.
func NewService(st Store, opts Options) *Service {
	header := opts.Header
	if len(header.Keywords) == 0 {
		header = excel.DefaultHeaderConfig()
	}
	return &Service{
		store:   st,
		header:  header,
		limiter: newLimiter(opts.MaxConcurrent, opts.MaxWait),
	}
}

// ActiveUploads returns the number of uploads currently being processed.
func (s *Service) ActiveUploads() int {
	return s.limiter.activeCount()
}

// WaitForUploads blocks until all in-flight uploads finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.waitForDrain(ctx)
}

// ProcessUpload ingests one uploaded document. The extension is checked
// before any byte is read; all structural validation happens before the
// first write, so a rejected file leaves no trace in the store.
func (s *Service) ProcessUpload(ctx context.Context, filename string, r io.Reader) error {
	if err := s.limiter.acquire(ctx); err != nil {
		return err
	}
	defer s.limiter.release()

	logger := logging.FromContext(ctx).With("filename", filename)
	logger.Debug("processing upload")

	if !excel.ValidExtension(filename) {
		return apperr.New(apperr.KindUnsupportedFormat,
			"unsupported file format, please upload an Excel file (.xls)")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	logger.Debug("upload read", "bytes", len(data))

	sum := sha256.Sum256(data)
	fingerprint := hex.EncodeToString(sum[:])

	grid, err := excel.Decode(data)
	if err != nil {
		return apperr.Wrap(apperr.KindDecode,
			"the file could not be read as an Excel sheet", err)
	}
	logger.Debug("workbook decoded", "rows", grid.Rows())

	return s.processGrid(ctx, filename, fingerprint, grid)
}

// processGrid runs everything below the byte layer: structural checks,
// segmentation, and reconciliation.
func (s *Service) processGrid(ctx context.Context, filename, fingerprint string, grid excel.Grid) error {
	logger := logging.FromContext(ctx).With("filename", filename)

	if grid.Rows() < 3 {
		return apperr.New(apperr.KindInsufficientData,
			"the file has insufficient structure")
	}

	headerIdx := excel.FindHeaderRow(grid, s.header)
	if headerIdx < 0 {
		return apperr.New(apperr.KindHeaderNotFound,
			"unable to determine the report header")
	}
	logger.Debug("header located", "row", headerIdx)

	if grid.Rows() < headerIdx+3 {
		return apperr.New(apperr.KindInsufficientData,
			"the file has an incorrect data structure")
	}

	file, err := s.upsertFile(ctx, filename, fingerprint)
	if err != nil {
		return err
	}

	var checks, products int
	seg := excel.NewSegmenter(grid[headerIdx+headerDataOffset:])
	for seg.Next() {
		group := seg.Group()
		check, err := s.resolveCheck(ctx, group, file.ID)
		if err != nil {
			return err
		}
		checks++
		for _, row := range group.Products {
			created, err := s.resolveProduct(ctx, row, check.ID)
			if err != nil {
				return err
			}
			if created {
				products++
			}
		}
	}

	logger.Info("file processed", "checks", checks, "products_created", products)
	return nil
}

// upsertFile finds the file record by filename and refreshes it, or creates
// a new one. The fingerprint unique index is deliberately not consulted
// here: identical content uploaded under a new filename must fail as a
// conflict at insert time.
func (s *Service) upsertFile(ctx context.Context, filename, fingerprint string) (*store.File, error) {
	now := time.Now().UTC()

	existing, err := s.store.FileByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.store.RefreshFile(ctx, existing.ID, fingerprint, now); err != nil {
			return nil, err
		}
		existing.Fingerprint = fingerprint
		existing.ProcessedAt = now
		return existing, nil
	}

	f := store.File{
		ID:          uuid.New(),
		Filename:    filename,
		Fingerprint: fingerprint,
		ProcessedAt: now,
	}
	if err := s.store.CreateFile(ctx, f); err != nil {
		return nil, err
	}
	return &f, nil
}

// resolveCheck returns the existing check for this marker, or creates one.
// An existing check is returned untouched: its date, kind, and file
// association reflect only its first-seen state.
func (s *Service) resolveCheck(ctx context.Context, group excel.Group, fileID uuid.UUID) (*store.Check, error) {
	existing, err := s.store.CheckByIdentifier(ctx, group.Marker)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c := store.Check{
		ID:            uuid.New(),
		Identifier:    group.Marker,
		OccurredAt:    parseCheckDate(group.Marker),
		OperationKind: textAt(group.Row, colOperationKind),
		FileID:        fileID,
	}
	if err := s.store.CreateCheck(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// resolveProduct records one product row under a check, skipping subtotal
// footers and names already present for the check. It reports whether a new
// record was created.
func (s *Service) resolveProduct(ctx context.Context, row []string, checkID uuid.UUID) (bool, error) {
	name := cellAt(row, 0)
	if excel.IsTotalMarker(name) {
		return false, nil
	}

	exists, err := s.store.ProductExists(ctx, checkID, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	p := store.Product{
		ID:       uuid.New(),
		Name:     name,
		Quantity: parseQuantity(cellAt(row, colQuantity)),
		Price:    parsePrice(cellAt(row, colPrice)),
		CheckID:  checkID,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}
