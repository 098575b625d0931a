package services

import (
	"fixmate-backend/models"

	"gorm.io/gorm"
)

// RatingService computes the derived rating aggregates. Nothing is cached:
// averages are simple arithmetic means over stored ratings, recomputed on
// every read and ignoring unrated jobs.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// TechnicianRating returns the mean rating across the technician's rated
// requests, or 0 when none have been rated.
func (s *RatingService) TechnicianRating(technicianID uint) (float64, error) {
	var rating float64
	err := s.db.Model(&models.ServiceRequest{}).
		Where("technician_id = ? AND rating IS NOT NULL", technicianID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&rating).Error
	return rating, err
}

// CenterRating averages the ratings of every technician belonging to the
// center. Callers pass the technician's center; a technician with no center
// has a center rating of 0.
func (s *RatingService) CenterRating(centerID uint) (float64, error) {
	var rating float64
	err := s.db.Table("service_requests sr").
		Joins("JOIN technicians t ON sr.technician_id = t.id").
		Where("t.center_id = ? AND sr.rating IS NOT NULL", centerID).
		Select("COALESCE(AVG(sr.rating), 0)").
		Scan(&rating).Error
	return rating, err
}

// JobCounts returns the technician's completed and active job totals.
func (s *RatingService) JobCounts(technicianID uint) (completed int64, active int64, err error) {
	if err = s.db.Model(&models.ServiceRequest{}).
		Where("technician_id = ? AND status = ?", technicianID, models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.Model(&models.ServiceRequest{}).
		Where("technician_id = ? AND status IN ?", technicianID,
			[]string{models.StatusPending, models.StatusInProgress}).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return completed, active, nil
}
