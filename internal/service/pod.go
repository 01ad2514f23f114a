package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"pod-portal/internal/logger"
	"pod-portal/internal/media"
	"pod-portal/internal/model"
)

// FailureKind tells the handler which response to shape. Decode failures
// are the submitter's fault; upload and persistence failures are ours.
type FailureKind int

const (
	FailureDecode FailureKind = iota + 1
	FailureUpload
	FailurePersist
)

type CaptureError struct {
	Kind FailureKind
	Err  error
}

func (e *CaptureError) Error() string {
	switch e.Kind {
	case FailureDecode:
		return fmt.Sprintf("capture: bad signature payload: %v", e.Err)
	case FailureUpload:
		return fmt.Sprintf("capture: media upload failed: %v", e.Err)
	default:
		return fmt.Sprintf("capture: event not saved: %v", e.Err)
	}
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Uploader is the object-storage collaborator contract.
type Uploader interface {
	Upload(ctx context.Context, file *media.File, folder string) (string, error)
}

type PODService struct {
	db    *gorm.DB
	store Uploader
}

func NewPODService(db *gorm.DB, store Uploader) *PODService {
	return &PODService{db: db, store: store}
}

// CaptureInput carries the already-validated identity plus the raw form
// fields. Event type and reference are stored as submitted; only the
// signature payload gets validated here.
type CaptureInput struct {
	User        *model.User
	ReferenceID string
	EventType   string
	Latitude    string
	Longitude   string
	Photo       *media.File
	Signature   string // data URI, empty when no signature was drawn
}

// Capture runs the POD pipeline: decode, upload, insert. Each step
// short-circuits the rest, so a decode failure performs zero uploads and
// an upload failure writes zero rows. Uploads that did complete before a
// later failure are not deleted; orphan blobs are accepted.
func (s *PODService) Capture(ctx context.Context, in CaptureInput) (*model.PODEvent, error) {
	var signature *media.File
	if in.Signature != "" {
		f, err := media.DecodeSignature(in.Signature)
		if err != nil {
			return nil, &CaptureError{Kind: FailureDecode, Err: err}
		}
		signature = f
	}

	folder := "pod_" + strings.ToLower(in.EventType)

	var photoURL, signatureURL *string
	if in.Photo != nil {
		uri, err := s.store.Upload(ctx, in.Photo, folder)
		if err != nil {
			return nil, &CaptureError{Kind: FailureUpload, Err: err}
		}
		photoURL = &uri
	}
	if signature != nil {
		uri, err := s.store.Upload(ctx, signature, folder)
		if err != nil {
			return nil, &CaptureError{Kind: FailureUpload, Err: err}
		}
		signatureURL = &uri
	}

	event := model.PODEvent{
		UserID:       in.User.ID,
		ReferenceID:  in.ReferenceID,
		EventType:    in.EventType,
		Latitude:     optional(in.Latitude),
		Longitude:    optional(in.Longitude),
		SignatureURL: signatureURL,
		PhotoURL:     photoURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Timestamps derive from the commit moment, not request start.
		event.UTCTimestamp = time.Now().UTC()
		event.SetAZTimestamp()
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, &CaptureError{Kind: FailurePersist, Err: err}
	}

	logger.Info("pod event captured",
		"event_id", event.ID, "user_id", in.User.ID,
		"reference_id", in.ReferenceID, "event_type", in.EventType)
	return &event, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
