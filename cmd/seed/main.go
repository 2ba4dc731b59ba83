package main

import (
	"fmt"
	"log/slog"
	"os"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/middleware/auth"
	"novelhub/internal/models"

	"gorm.io/gorm"
)

// Seeds a development database with a demo author and a few serialized
// novels so the reading surface has something to render.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}

	author, err := seedAuthor(db)
	if err != nil {
		logger.Error("seed_author_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("author_ready", "username", author.Username)

	for _, spec := range demoNovels {
		if err := seedNovel(db, author.ID, spec); err != nil {
			logger.Error("seed_novel_failed", "title", spec.title, "error", err)
			os.Exit(1)
		}
		logger.Info("novel_ready", "title", spec.title, "chapters", spec.chapters)
	}

	logger.Info("seed_complete")
}

func seedAuthor(db *gorm.DB) (*models.User, error) {
	var existing models.User
	if err := db.Where("username = ?", "demo_author").First(&existing).Error; err == nil {
		return &existing, nil
	}

	hashed, err := auth.HashPassword("demo_password")
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: "demo_author",
		Email:    "author@novelhub.local",
		Password: hashed,
		Genres:   models.GenreList{"Fantasy", "Adventure"},
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

type novelSpec struct {
	title    string
	genres   models.GenreList
	story    string
	chapters int
}

var demoNovels = []novelSpec{
	{
		title:    "The Long Night",
		genres:   models.GenreList{"Fantasy", "Adventure"},
		story:    "A watchman's apprentice discovers the city walls keep something in, not out.",
		chapters: 12,
	},
	{
		title:    "Paper Lanterns",
		genres:   models.GenreList{"Romance", "Urban"},
		story:    "Two rival street-food vendors share one alley and one unpaid electricity bill.",
		chapters: 8,
	},
	{
		title:    "Null Pointer",
		genres:   models.GenreList{"Sci-Fi", "Thriller"},
		story:    "A debugger for hire takes a contract on a program that refuses to crash.",
		chapters: 5,
	},
}

func seedNovel(db *gorm.DB, authorID string, spec novelSpec) error {
	var existing models.Novel
	if err := db.Where("title = ? AND upload_by = ?", spec.title, authorID).First(&existing).Error; err == nil {
		return nil // already seeded
	}

	novel := &models.Novel{
		Title:            spec.title,
		Author:           "Demo Author",
		UploadBy:         authorID,
		LeadingCharacter: "female",
		Story:            spec.story,
		Genres:           spec.genres,
	}
	if err := db.Create(novel).Error; err != nil {
		return err
	}

	for i := 1; i <= spec.chapters; i++ {
		chapter := &models.Chapter{
			NovelID:       novel.ID,
			ChapterNumber: i,
			Title:         fmt.Sprintf("Chapter %d", i),
			Content:       fmt.Sprintf("Placeholder body for chapter %d of %s.\n\nScroll to the bottom to count a view.", i, spec.title),
		}
		if err := db.Create(chapter).Error; err != nil {
			return err
		}
	}
	return nil
}
