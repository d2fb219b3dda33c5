package main

import (
	"context"
	"flag"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edustore/internal/config"
	"edustore/internal/db"
	"edustore/internal/model"
	"edustore/internal/repository"
	"edustore/internal/service"
)

func main() {
	email := flag.String("email", "admin@edustore.local", "admin email")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "admin display name")
	demo := flag.Bool("demo", false, "seed demo courses")
	flag.Parse()

	if *password == "" {
		log.Fatal("missing -password")
	}

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.Profile{},
		&model.Course{},
		&model.CourseImage{},
		&model.Payment{},
		&model.CourseAccess{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	profileRepo := repository.NewProfileRepository(gormDB)

	admin, err := seedAdmin(ctx, profileRepo, *email, *password, *name)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Printf("Admin profile ready: %s (%s)", admin.Email, admin.ID)

	if *demo {
		courseRepo := repository.NewCourseRepository(gormDB)
		accessRepo := repository.NewAccessRepository(gormDB)
		courseService := service.NewCourseService(courseRepo, accessRepo, nil)
		created, err := seedDemoCourses(ctx, courseService, admin)
		if err != nil {
			log.Fatalf("Failed to seed demo courses: %v", err)
		}
		log.Printf("Demo courses created: %d", created)
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the admin profile, or leaves an existing one alone.
// The role can only ever be set here; registration hands out customer.
func seedAdmin(ctx context.Context, repo repository.ProfileRepository, email, password, name string) (*model.Profile, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("Admin %s already exists, skipping", email)
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}

	admin := &model.Profile{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     name,
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// seedDemoCourses inserts a couple of sample courses for local development.
func seedDemoCourses(ctx context.Context, courses service.CourseService, admin *model.Profile) (int, error) {
	samples := []service.CourseInput{
		{
			Title:       "Algebra I",
			Description: "Linear equations, polynomials, and factoring from scratch.",
			YoutubeURL:  "https://youtu.be/algebra-1-intro",
			Price:       decimal.NewFromInt(10),
		},
		{
			Title:       "Physics Fundamentals",
			Description: "Kinematics and Newton's laws with worked examples.",
			YoutubeURL:  "https://youtu.be/physics-fundamentals",
			Price:       decimal.NewFromInt(15),
		},
	}

	created := 0
	for _, input := range samples {
		if _, err := courses.Create(ctx, admin.ID, input); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
