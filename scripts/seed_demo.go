// Seeds a demo instructor, course and lessons so a fresh install has
// something to click through. Safe to re-run: existing rows are kept.
//
// Usage: go run scripts/seed_demo.go
package main

import (
	"log"

	"ulearner_backend/internal/config"
	"ulearner_backend/internal/model"
	"ulearner_backend/pkg/database"
	"ulearner_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	instructor := model.User{
		Email:     "demo.instructor@ulearner.com",
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "Instructor",
		Role:      model.RoleInstructor,
	}
	if err := db.Where(model.User{Email: instructor.Email}).FirstOrCreate(&instructor).Error; err != nil {
		log.Fatalf("Failed to seed instructor: %v", err)
	}

	course := model.Course{
		Title:        "Getting Started with uLearner",
		Description:  "A short demo course used to explore progress tracking and certificates.",
		Difficulty:   "beginner",
		Duration:     1,
		Published:    true,
		InstructorID: instructor.ID,
	}
	if err := db.Where(model.Course{Title: course.Title, InstructorID: instructor.ID}).
		FirstOrCreate(&course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	lessons := []model.Lesson{
		{Title: "Welcome", Content: "What this platform does.", OrderIndex: 0, Duration: 5, CourseID: course.ID},
		{Title: "Tracking your progress", Content: "Mark lessons as completed.", OrderIndex: 1, Duration: 10, CourseID: course.ID},
		{Title: "Earning a certificate", Content: "Complete every lesson, then request your certificate.", OrderIndex: 2, Duration: 5, CourseID: course.ID},
	}
	for i := range lessons {
		err := db.Where(model.Lesson{Title: lessons[i].Title, CourseID: course.ID}).
			FirstOrCreate(&lessons[i]).Error
		if err != nil {
			log.Fatalf("Failed to seed lesson %q: %v", lessons[i].Title, err)
		}
	}

	log.Printf("Seeded course %d with %d lessons (instructor %s)", course.ID, len(lessons), instructor.Email)
}
