package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "github.com/TravelTales/travel-claims-backend/errors"
	"github.com/TravelTales/travel-claims-backend/internal/storage"
	"github.com/TravelTales/travel-claims-backend/internal/store"
	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/TravelTales/travel-claims-backend/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Allowed MIME types for uploaded attachments
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

var (
	submissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelclaims_submissions_accepted_total",
		Help: "Total number of submissions persisted successfully",
	})
	submissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelclaims_submissions_rejected_total",
		Help: "Total number of submissions rejected, by reason",
	}, []string{"reason"})
)

// ConfirmationSender notifies a submitter that their claim was received.
// Sending is best-effort; failures never fail the request.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, sub *types.Submission) error
}

// SubmissionHandler implements the upload-validate-persist pipeline for
// travel-claim form submissions.
type SubmissionHandler struct {
	store        store.SubmissionStore
	blobs        storage.BlobStore
	maxFileBytes int64
	confirmer    ConfirmationSender
}

// NewSubmissionHandler creates a new submission handler. confirmer may be nil
// when confirmation emails are disabled.
func NewSubmissionHandler(subStore store.SubmissionStore, blobs storage.BlobStore, maxFileBytes int64, confirmer ConfirmationSender) *SubmissionHandler {
	return &SubmissionHandler{
		store:        subStore,
		blobs:        blobs,
		maxFileBytes: maxFileBytes,
		confirmer:    confirmer,
	}
}

// fileCheck is the accept/reject decision for one uploaded part, produced
// before any content is buffered into storage.
type fileCheck struct {
	OK     bool
	Reason string
	Detail string
}

// checkFilePart is a pure predicate over a named file part: at most one file,
// within the size ceiling, MIME type in the allowed set.
func checkFilePart(partName string, fileCount int, size int64, detectedMIME string, maxBytes int64) fileCheck {
	if fileCount > 1 {
		return fileCheck{
			Reason: "duplicate_file",
			Detail: fmt.Sprintf("at most one file is accepted for %q", partName),
		}
	}
	if size > maxBytes {
		return fileCheck{
			Reason: "file_too_large",
			Detail: fmt.Sprintf("%q is %d bytes, exceeding the maximum of %d bytes", partName, size, maxBytes),
		}
	}
	if !allowedMimeTypes[detectedMIME] {
		return fileCheck{
			Reason: "invalid_file_type",
			Detail: fmt.Sprintf("%q has invalid file type %s. Allowed: image/jpeg, image/png, application/pdf", partName, detectedMIME),
		}
	}
	return fileCheck{OK: true}
}

// validatedPart carries a file part that passed the gate, before its content
// is handed to the blob store.
type validatedPart struct {
	header       *multipart.FileHeader
	detectedMIME string
}

// sniffMIME detects the content type from the first 512 bytes of the file.
// The client-declared Content-Type header is ignored.
func sniffMIME(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	sniffBuf := make([]byte, 512)
	n, err := io.ReadFull(f, sniffBuf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read file header: %w", err)
	}
	return mimetype.Detect(sniffBuf[:n]).String(), nil
}

// SubmitForm handles POST /api/submit-form.
//
// The pipeline is a single linear sequence with early-exit gates: parse the
// multipart body, validate the two file parts, validate the five scalar
// fields, store the blobs, persist the record, respond. File validation runs
// before field validation. A failure response means nothing was committed.
func (h *SubmissionHandler) SubmitForm(c *gin.Context) {
	log := logger.GetLogger()

	// Cap the whole body: two files at the ceiling plus form overhead.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxFileBytes+1024*1024)

	if err := c.Request.ParseMultipartForm(h.maxFileBytes); err != nil {
		submissionsRejected.WithLabelValues("invalid_form").Inc()
		_ = c.Error(apperrors.ValidationFailed("invalid_form", "failed to parse multipart form"))
		return
	}

	// File gate. Missing parts are collected so the caller learns every
	// absent name in one response.
	form := c.Request.MultipartForm
	var missingFiles []string
	partNames := []string{types.FilePartReviewScreenshot, types.FilePartTicket}
	for _, name := range partNames {
		if len(form.File[name]) == 0 {
			missingFiles = append(missingFiles, name)
		}
	}
	if len(missingFiles) > 0 {
		submissionsRejected.WithLabelValues("missing_files").Inc()
		_ = c.Error(apperrors.MissingFiles(missingFiles))
		return
	}

	parts := make(map[string]validatedPart, len(partNames))
	for _, name := range partNames {
		files := form.File[name]
		fh := files[0]

		detectedMIME := ""
		if len(files) == 1 && fh.Size <= h.maxFileBytes {
			mime, err := sniffMIME(fh)
			if err != nil {
				_ = c.Error(err)
				return
			}
			detectedMIME = mime
		}

		if check := checkFilePart(name, len(files), fh.Size, detectedMIME, h.maxFileBytes); !check.OK {
			submissionsRejected.WithLabelValues(check.Reason).Inc()
			_ = c.Error(apperrors.ValidationFailed(check.Reason, check.Detail))
			return
		}
		parts[name] = validatedPart{header: fh, detectedMIME: detectedMIME}
	}

	// Field gate.
	fields := make(map[string]string, len(types.RequiredFields))
	var missingFields []string
	for _, name := range types.RequiredFields {
		value := trimmedPostForm(c, name)
		if value == "" {
			missingFields = append(missingFields, name)
			continue
		}
		fields[name] = value
	}
	if len(missingFields) > 0 {
		submissionsRejected.WithLabelValues("missing_fields").Inc()
		_ = c.Error(apperrors.MissingFields(missingFields))
		return
	}

	// Store blob content under a per-submission prefix, then persist the
	// record as a single insert. Blobs are rolled back if the insert fails so
	// no partial submission survives.
	ctx := c.Request.Context()
	submissionKey := uuid.New().String()
	attachments := make(map[string]types.Attachment, len(partNames))
	var storedRefs []storage.BlobRef

	cleanup := func() {
		for _, ref := range storedRefs {
			if err := h.blobs.Delete(ctx, ref); err != nil {
				log.Warnw("Failed to clean up stored blob", "path", ref.Path, "error", err)
			}
		}
	}

	for _, name := range partNames {
		part := parts[name]
		f, err := part.header.Open()
		if err != nil {
			cleanup()
			_ = c.Error(fmt.Errorf("failed to open uploaded file: %w", err))
			return
		}

		key := fmt.Sprintf("submissions/%s/%s_%s", submissionKey, name, storage.SanitizeFilename(part.header.Filename))
		ref, err := h.blobs.Put(ctx, key, f, part.header.Size)
		f.Close()
		if err != nil {
			cleanup()
			_ = c.Error(fmt.Errorf("failed to store %s: %w", name, err))
			return
		}
		storedRefs = append(storedRefs, ref)

		attachments[name] = types.Attachment{
			FileName:    part.header.Filename,
			ContentType: part.detectedMIME,
			Size:        part.header.Size,
			Data:        ref.Inline,
			StoragePath: ref.Path,
		}
	}

	sub := &types.Submission{
		Name:             fields["name"],
		Email:            fields["email"],
		Phone:            fields["phone"],
		DateOfTravel:     fields["dateOfTravel"],
		Source:           fields["source"],
		ReviewScreenshot: attachments[types.FilePartReviewScreenshot],
		Ticket:           attachments[types.FilePartTicket],
	}

	id, err := h.store.CreateSubmission(ctx, sub)
	if err != nil {
		cleanup()
		_ = c.Error(err)
		return
	}

	submissionsAccepted.Inc()
	log.Infow("Submission persisted",
		"submission_id", id,
		"email", logger.MaskEmail(sub.Email),
		"source", sub.Source,
	)

	if h.confirmer != nil {
		if err := h.confirmer.SendConfirmation(ctx, sub); err != nil {
			log.Warnw("Failed to send confirmation email",
				"submission_id", id,
				"email", logger.MaskEmail(sub.Email),
				"error", err,
			)
		}
	}

	c.JSON(http.StatusCreated, types.SubmissionCreatedResponse{
		Message: "Form submitted successfully",
		Data:    sub.ToResponse(),
	})
}

// trimmedPostForm returns the form value with surrounding whitespace removed,
// so whitespace-only values are treated the same as absent ones.
func trimmedPostForm(c *gin.Context, name string) string {
	return strings.TrimSpace(c.PostForm(name))
}
