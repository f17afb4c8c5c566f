package input

import (
	"context"

	"counsel-interview/internal/domain"
)

// AppointmentService interface - Input port (use case)
// Defines what the application can do with counseling appointments
type AppointmentService interface {
	CreateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	GetAppointment(ctx context.Context, condition domain.QueryAppointmentRequest) (*domain.AppointmentListResponse, error)
}
