package main

import (
	"fmt"

	"skillstream/internal/model"
	"skillstream/pkg/config"
	"skillstream/pkg/database"
	"skillstream/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Fatal("Failed to seed database: %v", err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		creator  bool
	}{
		{"alice@test.com", "alice_codes", true},
		{"bob@test.com", "bob_builds", true},
		{"charlie@test.com", "charlie_learns", false},
		{"diana@test.com", "diana_learns", false},
		{"eve@test.com", "eve_learns", false},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*model.UserModel, 0, len(testUsers))
	for _, tu := range testUsers {
		user := &model.UserModel{
			Email:     tu.email,
			Username:  tu.username,
			Password:  string(hashed),
			IsCreator: tu.creator,
			IsStudent: true,
		}
		if err := db.Where("email = ?", tu.email).FirstOrCreate(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", tu.email, err)
		}
		users = append(users, user)
		log.Info("Seeded user %s (%s)", tu.username, user.ID)
	}

	videoSeeds := []struct {
		creator     *model.UserModel
		title       string
		description string
	}{
		{users[0], "Intro to Go Generics", "Type parameters from zero to production."},
		{users[0], "Profiling Go Services", "Finding hot paths with pprof."},
		{users[1], "PostgreSQL Indexing Deep Dive", "When the planner ignores your index and why."},
		{users[1], "Docker Compose for Local Dev", "One command to bring up the whole stack."},
	}

	videos := make([]*model.VideoModel, 0, len(videoSeeds))
	for _, vs := range videoSeeds {
		video := &model.VideoModel{
			CreatorID:   vs.creator.ID,
			Title:       vs.title,
			Description: vs.description,
			VideoURL:    fmt.Sprintf("https://skillstream-media.s3.us-east-1.amazonaws.com/videos/%s/seed.mp4", vs.creator.ID),
		}
		if err := db.Where("creator_id = ? AND title = ?", vs.creator.ID, vs.title).FirstOrCreate(video).Error; err != nil {
			return fmt.Errorf("failed to seed video %q: %w", vs.title, err)
		}
		videos = append(videos, video)
	}

	// Students subscribe to both creators and engage with the first video.
	for _, student := range users[2:] {
		for _, creator := range users[:2] {
			sub := &model.SubscriptionModel{
				SubscriberID: student.ID,
				CreatorID:    creator.ID,
			}
			if err := db.Where("subscriber_id = ? AND creator_id = ?", student.ID, creator.ID).FirstOrCreate(sub).Error; err != nil {
				return fmt.Errorf("failed to seed subscription: %w", err)
			}
		}

		like := &model.LikeModel{
			UserID:  student.ID,
			VideoID: videos[0].ID,
		}
		if err := db.Where("user_id = ? AND video_id = ?", student.ID, videos[0].ID).FirstOrCreate(like).Error; err != nil {
			return fmt.Errorf("failed to seed like: %w", err)
		}

		comment := &model.CommentModel{
			VideoID: videos[0].ID,
			UserID:  student.ID,
			Text:    fmt.Sprintf("Great walkthrough, thanks %s!", users[0].Username),
		}
		if err := db.Where("video_id = ? AND user_id = ?", videos[0].ID, student.ID).FirstOrCreate(comment).Error; err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}
	}

	return nil
}
