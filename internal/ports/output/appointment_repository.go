package output

import (
	"context"

	"counsel-interview/internal/domain"
)

// AppointmentRepository interface - Output port
// Defines what the application needs from appointment persistence
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error)
	GetAppointment(ctx context.Context, condition domain.QueryAppointmentRequest) (*domain.AppointmentListResponse, error)
}
