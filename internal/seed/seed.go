// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"log/slog"

	"homiee/internal/models"
	"homiee/internal/repository"
)

// DefaultCommunities is the built-in community catalog. Each community maps a
// hobby tag to a joinable group. Note the casing drift in a couple of hobby
// tags ("Video editing", "DIY crafting") versus their community names, which
// existing clients rely on.
func DefaultCommunities() []models.Community {
	return []models.Community{
		{Name: "Painting", Icon: "palette", Hobbies: models.StringList{"Painting"}},
		{Name: "Cooking", Icon: "utensils", Hobbies: models.StringList{"Cooking"}},
		{Name: "Wood Working", Icon: "hammer", Hobbies: models.StringList{"Wood Working"}},
		{Name: "Photography", Icon: "camera", Hobbies: models.StringList{"Photography"}},
		{Name: "Calligraphy", Icon: "pen-fancy", Hobbies: models.StringList{"Calligraphy"}},
		{Name: "Musical Instruments", Icon: "music", Hobbies: models.StringList{"Musical Instruments"}},
		{Name: "Hiking", Icon: "mountain", Hobbies: models.StringList{"Hiking"}},
		{Name: "Collecting", Icon: "box-open", Hobbies: models.StringList{"Collecting"}},
		{Name: "Gaming", Icon: "gamepad", Hobbies: models.StringList{"Gaming"}},
		{Name: "Pottery", Icon: "jar", Hobbies: models.StringList{"Pottery"}},
		{Name: "Cycling", Icon: "bicycle", Hobbies: models.StringList{"Cycling"}},
		{Name: "Blogging", Icon: "blog", Hobbies: models.StringList{"Blogging"}},
		{Name: "Chess", Icon: "chess", Hobbies: models.StringList{"Chess"}},
		{Name: "Fitness", Icon: "dumbbell", Hobbies: models.StringList{"Fitness"}},
		{Name: "Video Editing", Icon: "video", Hobbies: models.StringList{"Video editing"}},
		{Name: "DIY Crafting", Icon: "tools", Hobbies: models.StringList{"DIY crafting"}},
		{Name: "Yoga", Icon: "spa", Hobbies: models.StringList{"Yoga"}},
		{Name: "Gardening", Icon: "seedling", Hobbies: models.StringList{"Gardening"}},
	}
}

// EnsureCommunities inserts the default catalog when the table is empty.
// Called on every startup so a fresh database is usable immediately.
func EnsureCommunities(ctx context.Context, repo repository.CommunityRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog := DefaultCommunities()
	if err := repo.CreateBatch(ctx, catalog); err != nil {
		return err
	}
	slog.Info("Seeded community catalog", slog.Int("communities", len(catalog)))
	return nil
}
