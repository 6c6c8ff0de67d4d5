package repositories

import (
	"errors"

	"gorm.io/gorm"

	"smartrent_backend/internal/models"
)

var (
	ErrTicketNotFound   = errors.New("support ticket not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// RatingCount is one bucket of the feedback breakdown.
type RatingCount struct {
	Stars int   `json:"stars"`
	Count int64 `json:"count"`
}

type SupportRepository interface {
	FindFaqs() ([]models.Faq, error)

	CreateTicket(ticket *models.SupportTicket) error
	FindAllTickets() ([]models.SupportTicket, error)
	FindTicketsByUser(userID uint) ([]models.SupportTicket, error)
	FindTicketByID(id uint) (*models.SupportTicket, error)
	UpdateTicket(ticket *models.SupportTicket) error
	DeleteTicket(id uint) error

	CreateFeedback(feedback *models.Feedback) error
	FindAllFeedback() ([]models.Feedback, error)
	FindFeedbackByID(id uint) (*models.Feedback, error)
	UpdateFeedback(feedback *models.Feedback) error
	FeedbackStats() (avg float64, total int64, breakdown []RatingCount, err error)

	FindCommunityPosts(limit int) ([]models.CommunityPost, error)
	CreateCommunityPost(post *models.CommunityPost) error
}

type SupportRepositoryImpl struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) SupportRepository {
	return &SupportRepositoryImpl{db: db}
}

func (r *SupportRepositoryImpl) FindFaqs() ([]models.Faq, error) {
	var faqs []models.Faq
	if err := r.db.Order("id asc").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *SupportRepositoryImpl) CreateTicket(ticket *models.SupportTicket) error {
	return r.db.Create(ticket).Error
}

func (r *SupportRepositoryImpl) FindAllTickets() ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.Preload("User").Order("status asc, created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *SupportRepositoryImpl) FindTicketsByUser(userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *SupportRepositoryImpl) FindTicketByID(id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := r.db.First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *SupportRepositoryImpl) UpdateTicket(ticket *models.SupportTicket) error {
	result := r.db.Save(ticket)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *SupportRepositoryImpl) DeleteTicket(id uint) error {
	result := r.db.Delete(&models.SupportTicket{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *SupportRepositoryImpl) CreateFeedback(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *SupportRepositoryImpl) FindAllFeedback() ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Preload("User").Order("created_at desc").Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *SupportRepositoryImpl) FindFeedbackByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *SupportRepositoryImpl) UpdateFeedback(feedback *models.Feedback) error {
	result := r.db.Save(feedback)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *SupportRepositoryImpl) FeedbackStats() (float64, int64, []RatingCount, error) {
	var total int64
	if err := r.db.Model(&models.Feedback{}).Count(&total).Error; err != nil {
		return 0, 0, nil, err
	}

	var avg float64
	if total > 0 {
		err := r.db.Model(&models.Feedback{}).
			Select("AVG(rating)").Scan(&avg).Error
		if err != nil {
			return 0, 0, nil, err
		}
	}

	var breakdown []RatingCount
	err := r.db.Model(&models.Feedback{}).
		Select("rating as stars, COUNT(*) as count").
		Group("rating").Order("rating asc").
		Scan(&breakdown).Error
	if err != nil {
		return 0, 0, nil, err
	}

	return avg, total, breakdown, nil
}

func (r *SupportRepositoryImpl) FindCommunityPosts(limit int) ([]models.CommunityPost, error) {
	var posts []models.CommunityPost
	err := r.db.Order("created_at desc").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *SupportRepositoryImpl) CreateCommunityPost(post *models.CommunityPost) error {
	return r.db.Create(post).Error
}
