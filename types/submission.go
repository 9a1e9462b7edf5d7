package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment file part names expected in the multipart form.
const (
	FilePartReviewScreenshot = "reviewScreenshot"
	FilePartTicket           = "ticket"
)

// RequiredFields lists the scalar form fields a submission must carry,
// in the order they are reported when missing.
var RequiredFields = []string{"name", "email", "phone", "dateOfTravel", "source"}

// Attachment holds one uploaded file. Exactly one of Data (inline strategy)
// or StoragePath (disk/s3 strategy) is populated. Data is never serialized
// into JSON responses.
type Attachment struct {
	FileName    string `bson:"file_name" json:"fileName"`
	ContentType string `bson:"content_type" json:"contentType"`
	Size        int64  `bson:"size" json:"size"`
	Data        []byte `bson:"data,omitempty" json:"-"`
	StoragePath string `bson:"storage_path,omitempty" json:"storagePath,omitempty"`
}

// Submission represents a travel-claim form submission stored in the document store.
type Submission struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	DateOfTravel     string             `bson:"date_of_travel" json:"dateOfTravel"`
	Source           string             `bson:"source" json:"source"`
	ReviewScreenshot Attachment         `bson:"review_screenshot" json:"reviewScreenshot"`
	Ticket           Attachment         `bson:"ticket" json:"ticket"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
}

// AttachmentMeta is the client-facing view of an attachment: metadata only,
// never content.
type AttachmentMeta struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// SubmissionResponse is the persisted record minus binary content.
type SubmissionResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	DateOfTravel     string         `json:"dateOfTravel"`
	Source           string         `json:"source"`
	ReviewScreenshot AttachmentMeta `json:"reviewScreenshot"`
	Ticket           AttachmentMeta `json:"ticket"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// ToResponse strips binary content from a persisted submission.
func (s *Submission) ToResponse() SubmissionResponse {
	return SubmissionResponse{
		ID:           s.ID.Hex(),
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		DateOfTravel: s.DateOfTravel,
		Source:       s.Source,
		ReviewScreenshot: AttachmentMeta{
			FileName:    s.ReviewScreenshot.FileName,
			ContentType: s.ReviewScreenshot.ContentType,
			Size:        s.ReviewScreenshot.Size,
		},
		Ticket: AttachmentMeta{
			FileName:    s.Ticket.FileName,
			ContentType: s.Ticket.ContentType,
			Size:        s.Ticket.Size,
		},
		CreatedAt: s.CreatedAt,
	}
}
