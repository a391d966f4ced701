package services

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrUploadsDisabled is returned when no object storage is configured.
var ErrUploadsDisabled = errors.New("video uploads are not configured")

// UploadSigner issues presigned PUT URLs for objects in the video bucket.
type UploadSigner interface {
	PresignPut(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// UploadTicket tells a client where to PUT the media bytes of a video.
type UploadTicket struct {
	VodVideoID    string    `json:"vodVideoId"`
	UploadAddress string    `json:"uploadAddress"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// UploadService hands out upload URLs. The API server never handles media bytes.
type UploadService struct {
	signer UploadSigner
	ttl    time.Duration
}

// NewUploadService creates a new UploadService. A nil signer disables uploads.
func NewUploadService(signer UploadSigner, ttl time.Duration) *UploadService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &UploadService{signer: signer, ttl: ttl}
}

// Enabled reports whether object storage is configured.
func (s *UploadService) Enabled() bool {
	return s.signer != nil
}

// CreateUpload reserves an object name for userID and signs an upload URL for it.
// The returned VodVideoID is what the client later stores on the video.
func (s *UploadService) CreateUpload(ctx context.Context, userID, title, fileName string) (*UploadTicket, error) {
	if s.signer == nil {
		return nil, ErrUploadsDisabled
	}
	objectName := userID + "/" + uuid.New().String() + strings.ToLower(path.Ext(fileName))
	ticket, err := s.sign(ctx, objectName)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"vod_video_id": objectName,
		"title":        title,
	}).Info("upload url issued")
	return ticket, nil
}

// RefreshUpload signs a new URL for an object previously reserved by userID.
func (s *UploadService) RefreshUpload(ctx context.Context, userID, vodVideoID string) (*UploadTicket, error) {
	if s.signer == nil {
		return nil, ErrUploadsDisabled
	}
	if !strings.HasPrefix(vodVideoID, userID+"/") {
		return nil, errors.Wrapf(ErrForbidden, "upload %s is not owned by user %s", vodVideoID, userID)
	}
	return s.sign(ctx, vodVideoID)
}

func (s *UploadService) sign(ctx context.Context, objectName string) (*UploadTicket, error) {
	url, err := s.signer.PresignPut(ctx, objectName, s.ttl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to sign upload url for %s", objectName)
	}
	return &UploadTicket{
		VodVideoID:    objectName,
		UploadAddress: url,
		ExpiresAt:     time.Now().Add(s.ttl).UTC(),
	}, nil
}
