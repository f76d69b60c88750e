package pages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// ProjectForm is the create-project form.
type ProjectForm struct {
	Name        string
	Client      string
	SiteAddress string
	StartDate   string
	EndDate     string
	Status      string
	Touched     map[string]bool
}

func newProjectForm() ProjectForm {
	return ProjectForm{Status: "active", Touched: map[string]bool{}}
}

func (f *ProjectForm) missing() []string {
	var fields []string
	if f.Name == "" {
		fields = append(fields, "name")
	}
	if f.Client == "" {
		fields = append(fields, "client")
	}
	if f.SiteAddress == "" {
		fields = append(fields, "siteAddress")
	}
	if f.StartDate == "" {
		fields = append(fields, "startDate")
	}
	return fields
}

// Projects is the project list page with in-memory search and the create
// form.
type Projects struct {
	api *client.Client
	log *zap.Logger

	Projects     []models.Project
	Query        string
	Form         ProjectForm
	IsLoading    bool
	ErrorMessage string
}

func NewProjects(api *client.Client, log *zap.Logger) *Projects {
	if log == nil {
		log = zap.NewNop()
	}
	return &Projects{api: api, log: log, Form: newProjectForm()}
}

func (p *Projects) Enter(ctx context.Context) {
	p.IsLoading = true
	projects, err := p.api.ListProjects(ctx)
	p.IsLoading = false
	if err != nil {
		p.ErrorMessage = "Unable to load projects."
		return
	}
	p.Projects = projects
}

// Create validates, posts, and on success prepends the new project and
// resets the form to its defaults.
func (p *Projects) Create(ctx context.Context) {
	if fields := p.Form.missing(); len(fields) > 0 {
		for _, field := range fields {
			p.Form.Touched[field] = true
		}
		return
	}

	p.ErrorMessage = ""
	status := p.Form.Status
	if status == "" {
		status = "active"
	}

	project, err := p.api.CreateProject(ctx, models.ProjectDraft{
		Name:        p.Form.Name,
		Client:      p.Form.Client,
		SiteAddress: p.Form.SiteAddress,
		StartDate:   p.Form.StartDate,
		EndDate:     p.Form.EndDate,
		Status:      status,
	})
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to create project.")
		return
	}

	p.Projects = append([]models.Project{project}, p.Projects...)
	p.Form = newProjectForm()
}

// Delete removes the project locally once the server acknowledges. There
// is no rollback path; a failure just reports.
func (p *Projects) Delete(ctx context.Context, projectID string) {
	if err := p.api.DeleteProject(ctx, projectID); err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to delete project.")
		return
	}

	kept := p.Projects[:0:0]
	for _, project := range p.Projects {
		if project.ID != projectID {
			kept = append(kept, project)
		}
	}
	p.Projects = kept
}

// Filtered applies the in-memory search across name, client and address.
func (p *Projects) Filtered() []models.Project {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	if query == "" {
		return p.Projects
	}

	var matched []models.Project
	for _, project := range p.Projects {
		for _, value := range []string{project.Name, project.Client, project.SiteAddress} {
			if value != "" && strings.Contains(strings.ToLower(value), query) {
				matched = append(matched, project)
				break
			}
		}
	}
	return matched
}

func (p *Projects) Render() string {
	var b strings.Builder
	b.WriteString("Projects\n")
	if p.IsLoading {
		b.WriteString("  loading...\n")
	}
	for _, project := range p.Filtered() {
		status := project.Status
		if project.Archived {
			status = "archived"
		}
		fmt.Fprintf(&b, "  %s  %s / %s (%s)\n", project.ID, project.Name, project.Client, status)
	}
	if p.ErrorMessage != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.ErrorMessage)
	}
	return b.String()
}
