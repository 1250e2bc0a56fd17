package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
	"github.com/dasiyes/ivmfolio/tools/metrics"
)

const maxImageMemory = 32 << 20

func (ah *ApiHandler) listProjects(w http.ResponseWriter, r *http.Request) {

	var (
		projects []*portfolio.Project
		err      error
	)

	if r.URL.Query().Get("featured") == "true" {
		projects, err = ah.Projects.FeaturedProjects(r.Context())
	} else {
		projects, err = ah.Projects.Projects(r.Context())
	}
	if err != nil {
		ah.Lgr.Errorf("listing projects failed. error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}

	if projects == nil {
		projects = []*portfolio.Project{}
	}
	respond(w, http.StatusOK, projects)
}

func (ah *ApiHandler) getProject(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	prj, err := ah.Projects.Project(r.Context(), id)
	if errors.Is(err, portfolio.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		ah.Lgr.Errorf("fetching project %q failed. error: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	respond(w, http.StatusOK, prj)
}

// createProject accepts a multipart form (the admin panel submits FormData)
// with an optional image part uploaded to object storage first.
func (ah *ApiHandler) createProject(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	prj := portfolio.Project{
		Title:           r.FormValue("title"),
		Description:     r.FormValue("description"),
		TechStack:       formTechStack(r),
		Featured:        r.FormValue("featured") == "true",
		LiveURL:         r.FormValue("liveUrl"),
		GithubURL:       r.FormValue("githubUrl"),
		WebsiteLocation: r.FormValue("websiteLocation"),
	}

	if prj.Title == "" || prj.Description == "" {
		respondError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	if ca := r.FormValue("createdAt"); ca != "" {
		t, err := parseFormTime(ca)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid createdAt value")
			return
		}
		prj.CreatedAt = t
	}

	imageURL, err := ah.uploadFormImage(r)
	if err != nil {
		ah.Lgr.Errorf("image upload failed. error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	prj.ImageURL = imageURL

	id, err := ah.Projects.StoreProject(r.Context(), &prj)
	if err != nil {
		ah.Lgr.Errorf("storing project failed. error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}

	metrics.ChProjectWrites <- 1
	respond(w, http.StatusCreated, map[string]string{"id": id})
}

func (ah *ApiHandler) updateProject(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var upd portfolio.ProjectUpdate
	if v, ok := formValue(r, "title"); ok {
		upd.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		upd.Description = &v
	}
	if _, ok := r.MultipartForm.Value["techStack"]; ok {
		upd.TechStack = formTechStack(r)
	}
	if v, ok := formValue(r, "featured"); ok {
		f := v == "true"
		upd.Featured = &f
	}
	if v, ok := formValue(r, "liveUrl"); ok {
		upd.LiveURL = &v
	}
	if v, ok := formValue(r, "githubUrl"); ok {
		upd.GithubURL = &v
	}
	if v, ok := formValue(r, "websiteLocation"); ok {
		upd.WebsiteLocation = &v
	}
	if v, ok := formValue(r, "createdAt"); ok && v != "" {
		t, err := parseFormTime(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid createdAt value")
			return
		}
		upd.CreatedAt = &t
	}

	imageURL, err := ah.uploadFormImage(r)
	if err != nil {
		ah.Lgr.Errorf("image upload failed. error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	if imageURL != "" {
		upd.ImageURL = &imageURL
	}

	err = ah.Projects.UpdateProject(r.Context(), id, &upd)
	if errors.Is(err, portfolio.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		ah.Lgr.Errorf("updating project %q failed. error: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}

	metrics.ChProjectWrites <- 1
	respond(w, http.StatusOK, map[string]string{"id": id})
}

func (ah *ApiHandler) deleteProject(w http.ResponseWriter, r *http.Request) {

	id := chi.URLParam(r, "id")

	prj, err := ah.Projects.Project(r.Context(), id)
	if errors.Is(err, portfolio.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		ah.Lgr.Errorf("fetching project %q for delete failed. error: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	// The image delete is best effort - a dangling object must not keep the
	// catalogue entry alive.
	if prj.ImageURL != "" {
		if err := ah.Images.Delete(r.Context(), prj.ImageURL); err != nil {
			ah.Lgr.Errorf("deleting image for project %q failed. error: %v", id, err)
		}
	}

	if err := ah.Projects.DeleteProject(r.Context(), id); err != nil {
		ah.Lgr.Errorf("deleting project %q failed. error: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	metrics.ChProjectWrites <- 1
	respond(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}

// uploadFormImage stores the optional `image` part and returns its public
// URL, or "" when the form carries no image.
func (ah *ApiHandler) uploadFormImage(r *http.Request) (string, error) {

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	ct := header.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	return ah.Images.Upload(r.Context(), header.Filename, ct, file)
}

func formValue(r *http.Request, key string) (string, bool) {
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// formTechStack accepts the stack either as repeated fields or as a single
// comma-separated value.
func formTechStack(r *http.Request) []string {

	var stack []string
	for _, v := range r.MultipartForm.Value["techStack"] {
		for _, entry := range strings.Split(v, ",") {
			if entry = strings.TrimSpace(entry); entry != "" {
				stack = append(stack, entry)
			}
		}
	}
	return stack
}

func parseFormTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
