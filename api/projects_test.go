package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
)

type fakeProjectRepo struct {
	byID    map[string]*portfolio.Project
	order   []string
	nextID  int
	updates map[string]*portfolio.ProjectUpdate
	deleted []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		byID:    map[string]*portfolio.Project{},
		updates: map[string]*portfolio.ProjectUpdate{},
	}
}

func (f *fakeProjectRepo) add(p *portfolio.Project) string {
	f.nextID++
	id := fmt.Sprintf("prj-%d", f.nextID)
	p.ID = id
	f.byID[id] = p
	f.order = append(f.order, id)
	return id
}

func (f *fakeProjectRepo) Projects(_ context.Context) ([]*portfolio.Project, error) {
	var out []*portfolio.Project
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeProjectRepo) FeaturedProjects(ctx context.Context) ([]*portfolio.Project, error) {
	all, _ := f.Projects(ctx)
	var out []*portfolio.Project
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Project(_ context.Context, id string) (*portfolio.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, portfolio.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjectRepo) StoreProject(_ context.Context, p *portfolio.Project) (string, error) {
	return f.add(p), nil
}

func (f *fakeProjectRepo) UpdateProject(_ context.Context, id string, upd *portfolio.ProjectUpdate) error {
	if _, ok := f.byID[id]; !ok {
		return portfolio.ErrProjectNotFound
	}
	f.updates[id] = upd
	return nil
}

func (f *fakeProjectRepo) DeleteProject(_ context.Context, id string) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeImageStore struct {
	uploads int
	deletes []string
	url     string
}

func (f *fakeImageStore) Upload(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	f.uploads++
	_, _ = io.Copy(io.Discard, r)
	if f.url != "" {
		return f.url, nil
	}
	return "https://storage.googleapis.com/test-bucket/projects/" + filename, nil
}

func (f *fakeImageStore) Delete(_ context.Context, publicURL string) error {
	f.deletes = append(f.deletes, publicURL)
	return nil
}

func projectsHandler(repo portfolio.ProjectRepo, images portfolio.ImageStore) http.Handler {
	ah := ApiHandler{
		Projects: repo,
		Images:   images,
		Lgr:      log.New(),
	}
	return ah.Router()
}

func TestListProjects(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.add(&portfolio.Project{Title: "Relay", Featured: true})
	repo.add(&portfolio.Project{Title: "Site"})
	h := projectsHandler(repo, &fakeImageStore{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/projects/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []portfolio.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestListFeaturedProjects(t *testing.T) {
	repo := newFakeProjectRepo()
	repo.add(&portfolio.Project{Title: "Relay", Featured: true})
	repo.add(&portfolio.Project{Title: "Site"})
	h := projectsHandler(repo, &fakeImageStore{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/projects/?featured=true", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got []portfolio.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Relay", got[0].Title)
}

func TestGetProjectNotFound(t *testing.T) {
	h := projectsHandler(newFakeProjectRepo(), &fakeImageStore{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/projects/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
}

func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateProjectWithImage(t *testing.T) {
	repo := newFakeProjectRepo()
	images := &fakeImageStore{url: "https://storage.googleapis.com/test-bucket/projects/x_shot.png"}
	h := projectsHandler(repo, images)

	body, ct := multipartBody(t, map[string]string{
		"title":       "Relay",
		"description": "A websocket relay",
		"techStack":   "Go, Firestore",
		"featured":    "true",
		"githubUrl":   "https://github.com/example/relay",
	}, "shot.png")

	req := httptest.NewRequest("POST", "/projects/", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, images.uploads)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	stored := repo.byID[resp["id"]]
	require.NotNil(t, stored)
	require.Equal(t, "Relay", stored.Title)
	require.True(t, stored.Featured)
	require.Equal(t, []string{"Go", "Firestore"}, stored.TechStack)
	require.Equal(t, images.url, stored.ImageURL)
}

func TestCreateProjectRequiresTitle(t *testing.T) {
	h := projectsHandler(newFakeProjectRepo(), &fakeImageStore{})

	body, ct := multipartBody(t, map[string]string{"description": "no title"}, "")
	req := httptest.NewRequest("POST", "/projects/", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProjectPartial(t *testing.T) {
	repo := newFakeProjectRepo()
	id := repo.add(&portfolio.Project{Title: "Relay"})
	h := projectsHandler(repo, &fakeImageStore{})

	body, ct := multipartBody(t, map[string]string{
		"title":    "Relay v2",
		"featured": "true",
	}, "")
	req := httptest.NewRequest("PUT", "/projects/"+id, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	upd := repo.updates[id]
	require.NotNil(t, upd)
	require.Equal(t, "Relay v2", *upd.Title)
	require.True(t, *upd.Featured)
	require.Nil(t, upd.Description)
	require.Nil(t, upd.ImageURL)
}

func TestDeleteProjectRemovesImage(t *testing.T) {
	repo := newFakeProjectRepo()
	id := repo.add(&portfolio.Project{
		Title:    "Relay",
		ImageURL: "https://storage.googleapis.com/test-bucket/projects/x_shot.png",
	})
	images := &fakeImageStore{}
	h := projectsHandler(repo, images)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("DELETE", "/projects/"+id, nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{id}, repo.deleted)
	require.Equal(t, []string{"https://storage.googleapis.com/test-bucket/projects/x_shot.png"}, images.deletes)
}
