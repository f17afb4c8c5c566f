package postgres

import (
	"context"
	"errors"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var _ output.AppointmentRepository = (*AppointmentRepository)(nil)

// AppointmentRepository struct - Secondary/Driven adapter for appointments
type AppointmentRepository struct {
	dbGorm *gorm.DB
}

// NewAppointmentRepository func - Creates new appointment repository
func NewAppointmentRepository(dbGorm *gorm.DB) *AppointmentRepository {
	logrus.Info("Migrate database ... appointments")
	domain.MigrateDatabase(dbGorm)
	return &AppointmentRepository{
		dbGorm: dbGorm,
	}
}

// CreateAppointment func - Creates a new appointment in the database
func (p *AppointmentRepository) CreateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	appointment := domain.Appointment{
		ParticipantID: request.ParticipantID,
		CounselorID:   request.CounselorID,
		Note:          request.Note,
		Response:      request.Response,
		Status:        request.Status,
	}
	if request.StartsAt != nil {
		startsAt, err := domain.ParseAppointmentTime(*request.StartsAt)
		if err != nil {
			logrus.Errorln(err)
			return nil, err
		}
		startsAt = startsAt.UTC()
		appointment.StartsAt = &startsAt
	}
	if err := p.dbGorm.WithContext(ctx).Create(&appointment).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return toAppointmentResponse(&appointment), nil
}

// UpdateAppointment func - Updates an existing appointment in the database
func (p *AppointmentRepository) UpdateAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	var appointment domain.Appointment

	columns, err := p.updateColumns(request)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errors.New("fields are not able to update")
	}

	err = p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if respondingCounselor(request) {
			var current domain.Appointment
			if err := tx.Where("id = ?", *request.ID).First(&current).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrAppointmentNotFound
				}
				return err
			}
			if current.CounselorID == nil || *current.CounselorID != *request.CounselorID {
				return domain.ErrAppointmentForbidden
			}
		}
		result := tx.Model(&domain.Appointment{}).Where("id = ?", *request.ID).Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAppointmentNotFound
		}
		return tx.Where("id = ?", *request.ID).First(&appointment).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return toAppointmentResponse(&appointment), nil
}

func (p *AppointmentRepository) updateColumns(request domain.AppointmentRequest) (map[string]interface{}, error) {
	expression := make(map[string]interface{})
	if request.CounselorID != nil && !respondingCounselor(request) {
		expression["counselor_id"] = *request.CounselorID
	}
	if request.StartsAt != nil {
		startsAt, err := domain.ParseAppointmentTime(*request.StartsAt)
		if err != nil {
			logrus.Errorln(err)
			return nil, err
		}
		expression["starts_at"] = startsAt.UTC()
	}
	if request.Note != nil {
		expression["note"] = *request.Note
	}
	if request.Response != nil {
		expression["response"] = *request.Response
	}
	if request.Status != nil {
		expression["status"] = *request.Status
	}
	return expression, nil
}

// respondingCounselor reports whether CounselorID names the counselor answering the
// appointment rather than a reassignment. Only the assigned counselor may answer.
func respondingCounselor(request domain.AppointmentRequest) bool {
	return request.CounselorID != nil && (request.Response != nil || request.Status != nil)
}

// DeleteAppointment func - Deletes an appointment from the database (soft delete)
func (p *AppointmentRepository) DeleteAppointment(ctx context.Context, request domain.AppointmentRequest) (*domain.AppointmentResponse, error) {
	var appointment domain.Appointment

	err := p.dbGorm.WithContext(ctx).Where("id = ?", *request.ID).First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	if err := p.dbGorm.WithContext(ctx).Delete(&appointment).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return toAppointmentResponse(&appointment), nil
}

// GetAppointment func - Retrieves appointment(s) with filtering and pagination
func (p *AppointmentRepository) GetAppointment(ctx context.Context, condition domain.QueryAppointmentRequest) (*domain.AppointmentListResponse, error) {
	var appointments []domain.Appointment

	tx := p.dbGorm.WithContext(ctx).Model(&domain.Appointment{}).Where(p.condition(condition))
	if condition.Day != nil {
		day, err := time.ParseInLocation(domain.OnlyDate, *condition.Day, domain.Location)
		if err != nil {
			logrus.Errorln(err)
			return nil, err
		}
		tx = tx.Where("starts_at BETWEEN ? AND ?", domain.BeginningOfDay(day).UTC(), domain.EndOfDay(day).UTC())
	}

	var totalItem int64
	if err := tx.Count(&totalItem).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	if condition.ID == nil && condition.SortMethod != nil && condition.Pagination != nil {
		order := condition.SortMethod.OrderBy
		if order == "" {
			order = "starts_at"
		}
		if condition.SortMethod.Asc {
			tx = tx.Order(order + " ASC")
		} else {
			tx = tx.Order(order + " DESC")
		}
		tx = tx.Limit(condition.Pagination.Limit).Offset(condition.Pagination.Offset)
	}

	if err := tx.Find(&appointments).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	result := domain.AppointmentListResponse{
		Appointments: []domain.AppointmentResponse{},
		CurrentPage:  condition.Page,
		TotalItem:    &totalItem,
	}
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	for i := range appointments {
		result.Appointments = append(result.Appointments, *toAppointmentResponse(&appointments[i]))
	}
	return &result, nil
}

func (p *AppointmentRepository) condition(condition domain.QueryAppointmentRequest) map[string]interface{} {
	expression := make(map[string]interface{})
	if condition.ID != nil {
		expression["id"] = *condition.ID
	}
	if condition.ParticipantID != nil {
		expression["participant_id"] = *condition.ParticipantID
	}
	if condition.CounselorID != nil {
		expression["counselor_id"] = *condition.CounselorID
	}
	if condition.Status != nil {
		expression["status"] = *condition.Status
	}
	return expression
}

func toAppointmentResponse(appointment *domain.Appointment) *domain.AppointmentResponse {
	response := domain.AppointmentResponse{
		ID:            appointment.ID,
		ParticipantID: appointment.ParticipantID,
		CounselorID:   appointment.CounselorID,
		Note:          appointment.Note,
		Response:      appointment.Response,
		Status:        appointment.Status,
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
		DeletedAt:     appointment.DeletedAt,
	}
	if appointment.StartsAt != nil {
		startsAt := appointment.StartsAt.In(domain.Location).Format(time.RFC3339)
		response.StartsAt = &startsAt
	}
	return &response
}
