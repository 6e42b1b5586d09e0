package handlers

import (
	"reflect"
	"testing"

	"communityconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func baseUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "alice@x.com",
		Name:     "Alice",
		Title:    "PhD Student",
		Location: "Building C",
		Bio:      "Researching distributed systems",
		Profile: models.Profile{
			Education:  []models.Education{{School: "State University", Degree: "BSc"}},
			Experience: []models.Experience{{Company: "Lab", Title: "RA"}},
			Skills:     []string{"go", "mongodb"},
			SocialLinks: models.SocialLinks{
				LinkedIn: "https://linkedin.com/in/alice",
				GitHub:   "https://github.com/alice",
			},
		},
	}
}

func TestApplyProfileUpdate_KeepsUnspecifiedFields(t *testing.T) {
	user := baseUser()
	applyProfileUpdate(user, &UpdateProfileRequest{Title: "Postdoc"})

	if user.Title != "Postdoc" {
		t.Errorf("Title = %q, want Postdoc", user.Title)
	}
	if user.Name != "Alice" {
		t.Errorf("Name should be untouched, got %q", user.Name)
	}
	if user.Bio != "Researching distributed systems" {
		t.Errorf("Bio should be untouched, got %q", user.Bio)
	}
	if len(user.Profile.Skills) != 2 {
		t.Errorf("Profile.Skills should be untouched, got %v", user.Profile.Skills)
	}
}

func TestApplyProfileUpdate_AboutMapsToBio(t *testing.T) {
	user := baseUser()
	applyProfileUpdate(user, &UpdateProfileRequest{About: "New research focus"})

	if user.Bio != "New research focus" {
		t.Errorf("Bio = %q, want the about value", user.Bio)
	}
}

func TestMergeProfile_SectionBySection(t *testing.T) {
	current := baseUser().Profile

	merged := mergeProfile(current, &ProfileUpdate{
		Skills: []string{"go", "gin", "bson"},
	})

	if !reflect.DeepEqual(merged.Skills, []string{"go", "gin", "bson"}) {
		t.Errorf("Skills = %v, want replaced list", merged.Skills)
	}
	if !reflect.DeepEqual(merged.Education, current.Education) {
		t.Error("Education should be kept when absent from the update")
	}
	if !reflect.DeepEqual(merged.Experience, current.Experience) {
		t.Error("Experience should be kept when absent from the update")
	}
}

func TestMergeProfile_NilUpdateKeepsEverything(t *testing.T) {
	current := baseUser().Profile
	merged := mergeProfile(current, nil)
	if !reflect.DeepEqual(merged, current) {
		t.Error("nil update must not change the profile")
	}
}

func TestMergeProfile_SocialLinksMergePerLink(t *testing.T) {
	current := baseUser().Profile

	merged := mergeProfile(current, &ProfileUpdate{
		SocialLinks: &SocialLinksUpdate{Twitter: "https://twitter.com/alice"},
	})

	if merged.SocialLinks.Twitter != "https://twitter.com/alice" {
		t.Errorf("Twitter = %q, want the new link", merged.SocialLinks.Twitter)
	}
	if merged.SocialLinks.LinkedIn != current.SocialLinks.LinkedIn {
		t.Error("LinkedIn should survive a partial socialLinks update")
	}
	if merged.SocialLinks.GitHub != current.SocialLinks.GitHub {
		t.Error("GitHub should survive a partial socialLinks update")
	}
}

func TestMergeField(t *testing.T) {
	if got := mergeField("old", "new"); got != "new" {
		t.Errorf("mergeField(old, new) = %q", got)
	}
	if got := mergeField("old", ""); got != "old" {
		t.Errorf("mergeField(old, empty) = %q", got)
	}
	if got := mergeField("", ""); got != "" {
		t.Errorf("mergeField(empty, empty) = %q", got)
	}
}
