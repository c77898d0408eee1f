package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aeronica/complaint-portal/internal/domain"
	"github.com/aeronica/complaint-portal/internal/repository"
	"github.com/aeronica/complaint-portal/internal/storage"
	"github.com/aeronica/complaint-portal/pkg/events"
	"github.com/aeronica/complaint-portal/pkg/logger"
)

type ComplaintService interface {
	// Submit stores an optional photo, then inserts the record with
	// status forced to pending. file may be nil.
	Submit(ctx context.Context, req *domain.SubmitComplaintRequest, filename string, file io.Reader) (*domain.Complaint, error)
	ListPublic(ctx context.Context) ([]domain.PublicComplaint, error)
	ListAdmin(ctx context.Context) ([]domain.Complaint, error)
	// UpdateStatus returns nil, nil when the complaint does not exist.
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.UpdateStatusResponse, error)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	store         storage.ObjectStore
	eventBus      events.Publisher
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	store storage.ObjectStore,
	eventBus events.Publisher,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		store:         store,
		eventBus:      eventBus,
	}
}

func (s *complaintService) Submit(ctx context.Context, req *domain.SubmitComplaintRequest, filename string, file io.Reader) (*domain.Complaint, error) {
	if file != nil {
		url, err := s.store.Save(ctx, filename, file)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		req.ImageURL = &url
	}

	complaint, err := s.complaintRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.ComplaintCreated, events.ComplaintCreatedEvent{
		ComplaintID:   complaint.ID,
		ComplaintType: deref(complaint.ComplaintType),
		Urgency:       deref(complaint.Urgency),
		HasImage:      complaint.ImageURL != nil,
		CreatedAt:     complaint.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish complaint.created", "error", err, "complaint_id", complaint.ID)
	}

	return complaint, nil
}

func (s *complaintService) ListPublic(ctx context.Context) ([]domain.PublicComplaint, error) {
	complaints, err := s.complaintRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	public := make([]domain.PublicComplaint, len(complaints))
	for i := range complaints {
		public[i] = *complaints[i].ToPublic()
	}
	return public, nil
}

func (s *complaintService) ListAdmin(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaintRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.UpdateStatusResponse, error) {
	found, err := s.complaintRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if !found {
		return nil, nil
	}

	if err := s.eventBus.Publish(ctx, events.ComplaintStatusUpdated, events.ComplaintStatusUpdatedEvent{
		ComplaintID: id,
		NewStatus:   string(status),
		UpdatedAt:   time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish complaint.status.updated", "error", err, "complaint_id", id)
	}

	return &domain.UpdateStatusResponse{
		Message:   "Status updated",
		ID:        id,
		NewStatus: string(status),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
