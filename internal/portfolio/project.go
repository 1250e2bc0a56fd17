package portfolio

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// Project is a single portfolio entry as stored in the `projects` collection.
type Project struct {
	ID              string    `firestore:"-" json:"id"`
	Title           string    `firestore:"title" json:"title"`
	Description     string    `firestore:"description" json:"description"`
	ImageURL        string    `firestore:"imageUrl" json:"imageUrl"`
	TechStack       []string  `firestore:"techStack" json:"techStack"`
	Featured        bool      `firestore:"featured" json:"featured"`
	LiveURL         string    `firestore:"liveUrl" json:"liveUrl,omitempty"`
	GithubURL       string    `firestore:"githubUrl" json:"githubUrl,omitempty"`
	WebsiteLocation string    `firestore:"websiteLocation" json:"websiteLocation,omitempty"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// ProjectUpdate carries a partial update. Nil fields are left untouched.
type ProjectUpdate struct {
	Title           *string
	Description     *string
	ImageURL        *string
	TechStack       []string
	Featured        *bool
	LiveURL         *string
	GithubURL       *string
	WebsiteLocation *string
	CreatedAt       *time.Time
}

type ProjectRepo interface {
	Projects(ctx context.Context) ([]*Project, error)
	FeaturedProjects(ctx context.Context) ([]*Project, error)
	Project(ctx context.Context, id string) (*Project, error)
	StoreProject(ctx context.Context, p *Project) (string, error)
	UpdateProject(ctx context.Context, id string, upd *ProjectUpdate) error
	DeleteProject(ctx context.Context, id string) error
}

// ImageStore abstracts the object storage holding the project images.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}
