package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/database"
	"github.com/soupclass/soup-backend/internal/logger"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     model.Role
}

var users = []seedUser{
	{"Administrator", "admin@email.com", "Admin123!", model.RoleAdmin},
	{"User Satu", "user1@email.com", "User123!", model.RoleUser},
	{"User Dua", "user2@email.com", "User123!", model.RoleUser},
}

type seedCourse struct {
	name        string
	price       string
	description string
}

var catalogue = []struct {
	category    string
	description string
	courses     []seedCourse
}{
	{"Asian", "Masakan khas Asia", []seedCourse{
		{"Tom Yum Thailand", "450000", "Sup asam pedas khas Thailand"},
		{"Ramen Jepang", "400000", "Mi kuah kaldu ala Jepang"},
	}},
	{"Western", "Masakan ala Barat", []seedCourse{
		{"Pasta Carbonara", "500000", "Pasta dengan saus krim dan telur"},
		{"Beef Steak", "650000", "Steak sapi dengan saus lada hitam"},
	}},
	{"Dessert", "Hidangan penutup", []seedCourse{
		{"Chocolate Lava Cake", "300000", "Kue cokelat dengan isian lumer"},
	}},
	{"Cookies", "Kue kering", []seedCourse{
		{"Butter Cookies", "250000", "Kue mentega renyah"},
	}},
}

var paymentMethods = []string{"Gopay", "OVO", "Dana", "Mandiri", "BCA", "BNI"}

const (
	scheduleCount = 3
	seedSlots     = 10
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	s := &seeder{
		cfg:          cfg,
		log:          log,
		userRepo:     repository.NewUserRepository(pool),
		categoryRepo: repository.NewCategoryRepository(pool),
		courseRepo:   repository.NewMenuCourseRepository(pool),
		scheduleRepo: repository.NewScheduleRepository(pool),
		csRepo:       repository.NewCourseScheduleRepository(pool),
		paymentRepo:  repository.NewPaymentMethodRepository(pool),
	}

	fmt.Println("=== Seeding Soup demo data ===")

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"users", s.seedUsers},
		{"payment methods", s.seedPaymentMethods},
		{"catalogue", s.seedCatalogue},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			log.Fatal().Err(err).Str("step", step.name).Msg("Seed failed")
		}
	}

	fmt.Println("\nSeed completed!")
}

type seeder struct {
	cfg          *config.Config
	log          zerolog.Logger
	userRepo     *repository.UserRepository
	categoryRepo *repository.CategoryRepository
	courseRepo   *repository.MenuCourseRepository
	scheduleRepo *repository.ScheduleRepository
	csRepo       *repository.CourseScheduleRepository
	paymentRepo  *repository.PaymentMethodRepository
}

// seedUsers upserts the demo accounts, resetting their passwords.
func (s *seeder) seedUsers(ctx context.Context) error {
	for _, su := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), s.cfg.BcryptCost)
		if err != nil {
			return err
		}
		u := &model.User{
			Name:           su.name,
			Email:          su.email,
			PasswordHash:   string(hash),
			Role:           su.role,
			Status:         model.StatusActive,
			EmailConfirmed: true,
		}
		if err := s.userRepo.Upsert(ctx, u); err != nil {
			return fmt.Errorf("upsert %s: %w", su.email, err)
		}
		fmt.Printf("User %-18s (%s) id=%d\n", su.email, su.role, u.ID)
	}
	return nil
}

func (s *seeder) seedPaymentMethods(ctx context.Context) error {
	created := 0
	for _, name := range paymentMethods {
		pm := &model.PaymentMethod{Name: name, Status: model.StatusActive}
		err := s.paymentRepo.Create(ctx, pm)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return fmt.Errorf("payment method %s: %w", name, err)
		}
		created++
	}
	fmt.Printf("Payment methods: %d created, %d already present\n", created, len(paymentMethods)-created)
	return nil
}

// seedCatalogue creates missing categories, courses, schedules and course
// schedules. Existing rows are matched by name (or date) and reused.
func (s *seeder) seedCatalogue(ctx context.Context) error {
	schedules, err := s.ensureSchedules(ctx)
	if err != nil {
		return err
	}

	existingCategories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	categoryIDs := make(map[string]int, len(existingCategories))
	for _, c := range existingCategories {
		categoryIDs[strings.ToLower(c.Name)] = c.ID
	}

	for _, entry := range catalogue {
		categoryID, ok := categoryIDs[strings.ToLower(entry.category)]
		if !ok {
			c := &model.Category{Name: entry.category, Description: entry.description}
			if err := s.categoryRepo.Create(ctx, c); err != nil {
				return fmt.Errorf("category %s: %w", entry.category, err)
			}
			categoryID = c.ID
			fmt.Printf("Created category %s\n", c.Name)
		}

		existingCourses, err := s.courseRepo.GetAll(ctx, &categoryID)
		if err != nil {
			return err
		}
		courseIDs := make(map[string]int, len(existingCourses))
		for _, m := range existingCourses {
			courseIDs[strings.ToLower(m.Name)] = m.ID
		}

		for _, sc := range entry.courses {
			courseID, ok := courseIDs[strings.ToLower(sc.name)]
			if !ok {
				m := &model.MenuCourse{
					Name:        sc.name,
					Price:       decimal.RequireFromString(sc.price),
					Description: sc.description,
					CategoryID:  categoryID,
				}
				if err := s.courseRepo.Create(ctx, m); err != nil {
					return fmt.Errorf("course %s: %w", sc.name, err)
				}
				courseID = m.ID
				fmt.Printf("Created course %s\n", m.Name)
			}

			if err := s.ensureCourseSchedules(ctx, courseID, schedules); err != nil {
				return fmt.Errorf("course schedules for %s: %w", sc.name, err)
			}
		}
	}
	return nil
}

// ensureSchedules returns one schedule on the first day of each of the next
// months at 09:00 UTC, creating the ones that do not exist yet.
func (s *seeder) ensureSchedules(ctx context.Context) ([]model.Schedule, error) {
	existing, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byDate := make(map[time.Time]model.Schedule, len(existing))
	for _, sch := range existing {
		byDate[sch.ScheduleDate.UTC()] = sch
	}

	now := time.Now().UTC()
	out := make([]model.Schedule, 0, scheduleCount)
	for i := 1; i <= scheduleCount; i++ {
		date := time.Date(now.Year(), now.Month()+time.Month(i), 1, 9, 0, 0, 0, time.UTC)
		if sch, ok := byDate[date]; ok {
			out = append(out, sch)
			continue
		}
		sch := model.Schedule{ScheduleDate: date}
		if err := s.scheduleRepo.Create(ctx, &sch); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", date.Format(time.DateOnly), err)
		}
		fmt.Printf("Created schedule %s\n", date.Format(time.DateOnly))
		out = append(out, sch)
	}
	return out, nil
}

func (s *seeder) ensureCourseSchedules(ctx context.Context, courseID int, schedules []model.Schedule) error {
	for _, sch := range schedules {
		cs := &model.CourseSchedule{
			MenuCourseID:  courseID,
			ScheduleID:    sch.ID,
			AvailableSlot: seedSlots,
			Status:        model.StatusActive,
		}
		err := s.csRepo.Create(ctx, cs)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
