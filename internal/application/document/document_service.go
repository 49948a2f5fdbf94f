package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/document"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/telemetry"
)

// ObjectStorageService abstracts the object storage backend used for
// document files. Implemented by the S3 adapter in infrastructure/storage.
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// reservationEntityType identifies document reservations in the ledger
const reservationEntityType = "document"

// DocumentService provides application services for document management
type DocumentService struct {
	documentRepo    document.DocumentRepository
	txScope         TransactionScope
	storage         ObjectStorageService
	eventBus        shared.EventBus
	businessMetrics *telemetry.BusinessMetrics
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo document.DocumentRepository,
	txScope TransactionScope,
	storage ObjectStorageService,
	eventBus shared.EventBus,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		txScope:      txScope,
		storage:      storage,
		eventBus:     eventBus,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *DocumentService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// GetByNumber retrieves a document by its number
func (s *DocumentService) GetByNumber(ctx context.Context, number string) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// List retrieves a paginated list of documents
func (s *DocumentService) List(ctx context.Context, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	domainFilter := document.DocumentFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Category:   filter.Category,
		Status:     filter.Status,
		DivisionID: filter.DivisionID,
	}

	total, err := s.documentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	documents, err := s.documentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(documents), total, nil
}

// Upload registers a new document, reserves quota for every allocation and
// returns a presigned URL for the actual file upload. Reservations and the
// document row commit in one transaction: when one division's quota cannot
// hold its share, the whole write rolls back, earlier increments included.
func (s *DocumentService) Upload(ctx context.Context, req UploadDocumentRequest) (*UploadURLResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "upload")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrFileSize, req.FileSize,
	)

	number, err := s.documentRepo.GenerateNumber(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrDocumentNumber, number)

	allocations := make([]document.Allocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, document.Allocation{
			DivisionID:    a.DivisionID,
			AllocatedSize: a.AllocatedSize,
		})
	}

	filePath := fmt.Sprintf("documents/%s/%s", number, req.FileName)
	d, err := document.NewDocument(number, req.Title, req.Category, req.FileName, filePath, req.FileSize, req.UploadedByID, req.UploadedBy, allocations)
	if err != nil {
		return nil, err
	}

	// Presign before writing anything: a storage failure leaves no rows
	// and no reserved capacity behind.
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, filePath, req.ContentType, 0)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	reserved := make([]*division.StorageReservation, 0, len(allocations))
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		reserved = reserved[:0]
		for _, a := range allocations {
			divisionID := a.DivisionID
			r, err := repos.Ledger().Reserve(ctx, &divisionID, reservationEntityType, d.ID, a.AllocatedSize)
			if err != nil {
				return err
			}
			reserved = append(reserved, r)
		}
		return repos.DocumentRepo().Save(ctx, d)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, d)
	if s.eventBus != nil {
		for _, r := range reserved {
			_ = s.eventBus.Publish(ctx, division.NewCapacityReservedEvent(r))
		}
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordDocumentUploaded(ctx, d.Category, d.FileSize)
	}

	return &UploadURLResponse{
		Document:  ToDocumentResponse(d),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// Download returns a presigned download URL for the stored file
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*DownloadURLResponse, error) {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, d.FilePath, 0)
	if err != nil {
		return nil, err
	}

	return &DownloadURLResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

// Update changes a document's metadata. Archived documents are read-only.
func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.UpdateMetadata(req.Title, req.Category); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// Archive moves a document to the archive. Archiving an archived document
// is a no-op.
func (s *DocumentService) Archive(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Archive(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// Restore brings an archived document back to active
func (s *DocumentService) Restore(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Restore(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// Delete removes a document and its stored file. While live quota
// reservations still reference the document the delete is refused, unless
// cascade is set, in which case every live reservation is released in the
// same transaction as the delete.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	d, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		reservations, err := repos.ReservationRepo().FindLiveByEntity(ctx, reservationEntityType, d.ID)
		if err != nil {
			return err
		}
		if len(reservations) > 0 && !cascade {
			return shared.ErrConflict
		}
		for i := range reservations {
			if err := repos.Ledger().Release(ctx, reservations[i].ID); err != nil {
				return err
			}
		}
		return repos.DocumentRepo().Delete(ctx, d.ID)
	})
	if err != nil {
		return err
	}

	// storage cleanup is best-effort, the object becomes unreachable anyway
	_ = s.storage.DeleteObject(ctx, d.FilePath)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, document.NewDocumentDeletedEvent(d))
	}
	return nil
}

func (s *DocumentService) publishEvents(ctx context.Context, d *document.Document) {
	if s.eventBus == nil {
		return
	}

	for _, event := range d.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	d.ClearDomainEvents()
}
