package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates the seed command, which loads the starter catalog into an
// empty database so the chatbot has site data to talk about.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with starter site content",
		Long:  "Insert the starter courses, success stories and testimonials. Existing rows are left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			repo := database.NewSiteContentRepository(db)
			ctx := context.Background()
			now := time.Now()

			courses := []*models.Course{
				{Title: "Smart Farming Fundamentals", Category: "technology", DifficultyLevel: "beginner",
					Description: "An introduction to precision agriculture, sensors and farm data."},
				{Title: "Soil Health & Crop Nutrition", Category: "agronomy", DifficultyLevel: "beginner",
					Description: "Understand soil biology, composting and fertilizer planning."},
				{Title: "IoT for Agriculture", Category: "technology", DifficultyLevel: "intermediate",
					Description: "Build and deploy sensor networks for irrigation and climate control."},
				{Title: "Agribusiness & Farm Management", Category: "business", DifficultyLevel: "intermediate",
					Description: "Plan, finance and market a modern farming operation."},
			}
			for _, c := range courses {
				c.ID = uuid.New()
				c.CreatedAt = now
				if err := repo.CreateCourse(ctx, c); err != nil {
					return fmt.Errorf("seed course %q: %w", c.Title, err)
				}
			}

			stories := []*models.SuccessStory{
				{StudentName: "Adaeze", Title: "From backyard garden to commercial greenhouse",
					Story: "After completing the IoT course, Adaeze automated her greenhouse and tripled her yield."},
				{StudentName: "Ibrahim", Title: "Smart irrigation on a family farm",
					Story: "Ibrahim cut water usage by 40 percent using what he learned in Smart Farming Fundamentals."},
			}
			for _, s := range stories {
				s.ID = uuid.New()
				s.CreatedAt = now
				if err := repo.CreateSuccessStory(ctx, s); err != nil {
					return fmt.Errorf("seed success story %q: %w", s.Title, err)
				}
			}

			testimonials := []*models.Testimonial{
				{AuthorName: "Chiamaka", Quote: "The courses are practical and easy to follow.", Rating: 5},
				{AuthorName: "Tunde", Quote: "I went from zero tech knowledge to running my own sensors.", Rating: 5},
			}
			for _, tm := range testimonials {
				tm.ID = uuid.New()
				tm.CreatedAt = now
				if err := repo.CreateTestimonial(ctx, tm); err != nil {
					return fmt.Errorf("seed testimonial by %q: %w", tm.AuthorName, err)
				}
			}

			fmt.Printf("Seeded %d courses, %d success stories, %d testimonials.\n",
				len(courses), len(stories), len(testimonials))
			return nil
		},
	}
}
