package application

import (
	"context"
	"fmt"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const (
	defaultAppointmentPageSize = 100
	maxAppointmentPageSize     = 500
)

// appointmentOrderColumns maps accepted order_by values to columns
var appointmentOrderColumns = map[string]string{
	"id":         "id",
	"starts_at":  "starts_at",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"status":     "status",
}

// AppointmentService struct - Application service implementing appointment use cases
type AppointmentService struct {
	repo output.AppointmentRepository
}

// NewAppointmentService func - Creates new appointment service
func NewAppointmentService(repo output.AppointmentRepository) *AppointmentService {
	return &AppointmentService{
		repo: repo,
	}
}

// CreateAppointment func - Use case: a participant requests a booking
func (s *AppointmentService) CreateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	if request.ParticipantID == nil || *request.ParticipantID == "" {
		return nil, fmt.Errorf("%w: participant_id is required", domain.ErrValidation)
	}
	if request.CounselorID == nil || *request.CounselorID == "" {
		return nil, fmt.Errorf("%w: counselor_id is required", domain.ErrValidation)
	}
	if err := validateStartsAt(request.StartsAt, true); err != nil {
		return nil, err
	}

	pending := domain.AppointmentStatusPending
	request.Status = &pending
	request.Response = nil

	result, err := s.repo.CreateAppointment(ctx, request)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return result, nil
}

// UpdateAppointment func - Use case: reschedule, respond or cancel
func (s *AppointmentService) UpdateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	if request.ID == nil {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if request.Status != nil && !request.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", domain.ErrValidation, *request.Status)
	}
	if err := validateStartsAt(request.StartsAt, false); err != nil {
		return nil, err
	}
	return s.repo.UpdateAppointment(ctx, request)
}

// DeleteAppointment func - Use case: soft delete an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	if request.ID == nil {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	return s.repo.DeleteAppointment(ctx, request)
}

// GetAppointment func - Use case: Get appointment(s) with pagination and filtering
func (s *AppointmentService) GetAppointment(ctx context.Context, condition domain.QueryAppointmentRequest) (*domain.AppointmentListResponse, error) {
	page := 1
	if condition.Page != nil && *condition.Page > 0 {
		page = *condition.Page
	}
	condition.Page = &page

	perPage := defaultAppointmentPageSize
	if condition.Limit != nil && *condition.Limit > 0 {
		perPage = *condition.Limit
	}
	if perPage > maxAppointmentPageSize {
		perPage = maxAppointmentPageSize
	}
	condition.Limit = &perPage

	condition.Pagination = &domain.Pagination{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	asc := true
	if condition.Asc != nil {
		asc = *condition.Asc
	}
	orderBy := "starts_at"
	if condition.OrderBy != nil {
		column, ok := appointmentOrderColumns[*condition.OrderBy]
		if !ok {
			return nil, fmt.Errorf("%w: cannot order by %q", domain.ErrValidation, *condition.OrderBy)
		}
		orderBy = column
	}
	condition.SortMethod = &domain.SortMethod{
		Asc:     asc,
		OrderBy: orderBy,
	}

	if condition.Day != nil {
		if _, err := time.ParseInLocation(domain.OnlyDate, *condition.Day, domain.Location); err != nil {
			return nil, fmt.Errorf("%w: day must be YYYY-MM-DD", domain.ErrValidation)
		}
	}
	if condition.Status != nil && !domain.AppointmentStatus(*condition.Status).IsValid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", domain.ErrValidation, *condition.Status)
	}

	return s.repo.GetAppointment(ctx, condition)
}

func validateStartsAt(startsAt *string, required bool) error {
	if startsAt == nil || *startsAt == "" {
		if required {
			return fmt.Errorf("%w: starts_at is required", domain.ErrValidation)
		}
		return nil
	}
	if _, err := domain.ParseAppointmentTime(*startsAt); err != nil {
		return fmt.Errorf("%w: starts_at must be RFC3339 or %q", domain.ErrValidation, domain.OnlyDateTimeLayout)
	}
	return nil
}
