package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmissionToResponse_ExcludesBinaryContent(t *testing.T) {
	sub := Submission{
		ID:           primitive.NewObjectID(),
		Name:         "Ada Traveler",
		Email:        "ada@example.com",
		Phone:        "+1-555-0100",
		DateOfTravel: "2026-06-15",
		Source:       "instagram",
		ReviewScreenshot: Attachment{
			FileName:    "review.jpg",
			ContentType: "image/jpeg",
			Size:        10240,
			Data:        []byte{0xff, 0xd8, 0xff},
		},
		Ticket: Attachment{
			FileName:    "ticket.pdf",
			ContentType: "application/pdf",
			Size:        20480,
			StoragePath: "submissions/abc/ticket.pdf",
		},
		CreatedAt: time.Now().UTC(),
	}

	resp := sub.ToResponse()
	assert.Equal(t, sub.ID.Hex(), resp.ID)
	assert.Equal(t, "review.jpg", resp.ReviewScreenshot.FileName)
	assert.Equal(t, int64(20480), resp.Ticket.Size)

	raw, err := json.Marshal(resp)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "\xff\xd8\xff")
	assert.NotContains(t, string(raw), "data")
}

func TestAttachmentJSONNeverCarriesData(t *testing.T) {
	att := Attachment{
		FileName:    "review.jpg",
		ContentType: "image/jpeg",
		Size:        3,
		Data:        []byte("abc"),
	}

	raw, err := json.Marshal(att)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	_, hasData := decoded["data"]
	assert.False(t, hasData)
}
