package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
	"github.com/dasiyes/ivmfolio/pkg/fspool"
)

type projectRepo struct {
	coll    string
	clients *fspool.ConnectionPool
}

func NewProjectRepository(clients *fspool.ConnectionPool, coll string) (portfolio.ProjectRepo, error) {
	if coll == "" {
		return nil, fmt.Errorf("projects collection name is empty")
	}
	return &projectRepo{coll: coll, clients: clients}, nil
}

func (p *projectRepo) Projects(ctx context.Context) ([]*portfolio.Project, error) {

	fsclient, err := p.clients.GetClient()
	if err != nil {
		return nil, fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer p.clients.ReleaseClient(fsclient)

	var projects []*portfolio.Project

	iter := fsclient.Collection(p.coll).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to list projects from repository. error: %v", err)
		}

		var prj portfolio.Project
		if err := doc.DataTo(&prj); err != nil {
			return nil, fmt.Errorf("unable to fit project format. error: %v", err)
		}
		prj.ID = doc.Ref.ID
		projects = append(projects, &prj)
	}

	return projects, nil
}

// FeaturedProjects filters the ordered projects list on the featured flag.
// The filtering happens here rather than in the query, matching the single
// composite-index-free query the collection is set up for.
func (p *projectRepo) FeaturedProjects(ctx context.Context) ([]*portfolio.Project, error) {

	all, err := p.Projects(ctx)
	if err != nil {
		return nil, err
	}

	var featured []*portfolio.Project
	for _, prj := range all {
		if prj.Featured {
			featured = append(featured, prj)
		}
	}
	return featured, nil
}

func (p *projectRepo) Project(ctx context.Context, id string) (*portfolio.Project, error) {

	fsclient, err := p.clients.GetClient()
	if err != nil {
		return nil, fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer p.clients.ReleaseClient(fsclient)

	doc, err := fsclient.Collection(p.coll).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, portfolio.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("unable to get project from repository. error: %v", err)
	}

	var prj portfolio.Project
	if err := doc.DataTo(&prj); err != nil {
		return nil, fmt.Errorf("unable to fit project format. error: %v", err)
	}
	prj.ID = doc.Ref.ID

	return &prj, nil
}

func (p *projectRepo) StoreProject(ctx context.Context, prj *portfolio.Project) (string, error) {

	fsclient, err := p.clients.GetClient()
	if err != nil {
		return "", fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer p.clients.ReleaseClient(fsclient)

	now := time.Now()
	if prj.CreatedAt.IsZero() {
		prj.CreatedAt = now
	}
	prj.UpdatedAt = now

	ref, _, err := fsclient.Collection(p.coll).Add(ctx, prj)
	if err != nil {
		return "", fmt.Errorf("unable to save project in repository. error: %v", err)
	}

	return ref.ID, nil
}

func (p *projectRepo) UpdateProject(ctx context.Context, id string, upd *portfolio.ProjectUpdate) error {

	fsclient, err := p.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer p.clients.ReleaseClient(fsclient)

	updates := []firestore.Update{
		{Path: "updatedAt", Value: time.Now()},
	}
	if upd.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *upd.Description})
	}
	if upd.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *upd.ImageURL})
	}
	if upd.TechStack != nil {
		updates = append(updates, firestore.Update{Path: "techStack", Value: upd.TechStack})
	}
	if upd.Featured != nil {
		updates = append(updates, firestore.Update{Path: "featured", Value: *upd.Featured})
	}
	if upd.LiveURL != nil {
		updates = append(updates, firestore.Update{Path: "liveUrl", Value: *upd.LiveURL})
	}
	if upd.GithubURL != nil {
		updates = append(updates, firestore.Update{Path: "githubUrl", Value: *upd.GithubURL})
	}
	if upd.WebsiteLocation != nil {
		updates = append(updates, firestore.Update{Path: "websiteLocation", Value: *upd.WebsiteLocation})
	}
	if upd.CreatedAt != nil {
		updates = append(updates, firestore.Update{Path: "createdAt", Value: *upd.CreatedAt})
	}

	_, err = fsclient.Collection(p.coll).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return portfolio.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("unable to update project in repository. error: %v", err)
	}
	return nil
}

func (p *projectRepo) DeleteProject(ctx context.Context, id string) error {

	fsclient, err := p.clients.GetClient()
	if err != nil {
		return fmt.Errorf("unable to get firestore client. error: %v", err)
	}
	defer p.clients.ReleaseClient(fsclient)

	if _, err := fsclient.Collection(p.coll).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("unable to delete project from repository. error: %v", err)
	}
	return nil
}
