package repository

import (
	"fmt"

	activityRepo "facestudio/database/repository/activity"
	articleRepo "facestudio/database/repository/article"
	inquiryRepo "facestudio/database/repository/inquiry"
	reservationRepo "facestudio/database/repository/reservation"
	treatmentRepo "facestudio/database/repository/treatment"
	userRepo "facestudio/database/repository/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces so wiring code needs one import.
type (
	UserRepository        = userRepo.UserRepository
	TreatmentRepository   = treatmentRepo.TreatmentRepository
	ArticleRepository     = articleRepo.ArticleRepository
	ReservationRepository = reservationRepo.ReservationRepository
	InquiryRepository     = inquiryRepo.InquiryRepository
	ActivityRepository    = activityRepo.ActivityRepository
)

// Repositories bundles every store the services depend on.
type Repositories struct {
	Users        UserRepository
	Treatments   TreatmentRepository
	Articles     ArticleRepository
	Reservations ReservationRepository
	Inquiries    InquiryRepository
	Activity     ActivityRepository
}

// NewRepositories builds the Postgres repositories and, when mongoDB is set, the activity log.
func NewRepositories(pool *pgxpool.Pool, mongoDB *mongo.Database) (*Repositories, error) {
	repos := &Repositories{
		Users:        userRepo.NewPgUserRepo(pool),
		Treatments:   treatmentRepo.NewPgTreatmentRepo(pool),
		Articles:     articleRepo.NewPgArticleRepo(pool),
		Reservations: reservationRepo.NewPgReservationRepo(pool),
		Inquiries:    inquiryRepo.NewPgInquiryRepo(pool),
	}
	if mongoDB != nil {
		activity, err := activityRepo.NewMongoActivityRepo(mongoDB)
		if err != nil {
			return nil, fmt.Errorf("activity repository: %w", err)
		}
		repos.Activity = activity
	}
	return repos, nil
}
