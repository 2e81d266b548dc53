package workspace

import (
	"context"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/client"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
)

// Projects returns the projects matching query on title, client name or
// location. An empty query returns all projects.
func (s *Service) Projects(query string) []project.Project {
	var out []project.Project

	s.read(func(st State) { out = project.Filter(st.Projects, query) })

	return out
}

func (s *Service) GetProject(id string) (project.Project, error) {
	var (
		p  project.Project
		ok bool
	)

	s.read(func(st State) { p, ok = project.Find(st.Projects, id) })

	if !ok {
		return project.Project{}, ErrNotFound
	}

	return p, nil
}

// CreateProject adds a project and opens its finance record. When the client
// exists its name is copied onto the project and the project is linked to it.
func (s *Service) CreateProject(ctx context.Context, params project.CreateParams) (project.Project, error) {
	var created project.Project

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		c, known := client.Find(next.Clients, params.ClientID)
		if known {
			params.ClientName = c.Name
		}

		next.Projects, created = project.Add(next.Projects, params)
		next.FinanceRecords, _ = finance.OpenRecord(next.FinanceRecords, created.ID, created.ClientID)

		changed := []Collection{CollectionProjects, CollectionFinanceRecords}

		if known && !slices.Contains(c.ProjectIDs, created.ID) {
			ids := append(slices.Clone(c.ProjectIDs), created.ID)
			next.Clients = client.UpdateClient(next.Clients, c.ID, client.Update{ProjectIDs: &ids})
			changed = append(changed, CollectionClients)
		}

		return changed, nil
	})
	if err != nil {
		return project.Project{}, err
	}

	return created, nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, upd project.Update) (project.Project, error) {
	var updated project.Project

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := project.Find(next.Projects, id); !ok {
			return nil, ErrNotFound
		}

		next.Projects = project.UpdateProject(next.Projects, id, upd)
		updated, _ = project.Find(next.Projects, id)

		return []Collection{CollectionProjects}, nil
	})
	if err != nil {
		return project.Project{}, err
	}

	return updated, nil
}

func (s *Service) AddSubmission(ctx context.Context, projectID string, params project.SubmissionParams) (project.Submission, error) {
	var created project.Submission

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		if _, ok := project.Find(next.Projects, projectID); !ok {
			return nil, ErrNotFound
		}

		next.Projects, created = project.AddSubmission(next.Projects, projectID, params)

		return []Collection{CollectionProjects}, nil
	})
	if err != nil {
		return project.Submission{}, err
	}

	return created, nil
}

func (s *Service) UpdateSubmission(ctx context.Context, projectID, submissionID string, upd project.SubmissionUpdate) (project.Submission, error) {
	var updated project.Submission

	err := s.apply(ctx, func(next *State, _ time.Time) ([]Collection, error) {
		p, ok := project.Find(next.Projects, projectID)
		if !ok || !slices.ContainsFunc(p.Submissions, func(sub project.Submission) bool { return sub.ID == submissionID }) {
			return nil, ErrNotFound
		}

		next.Projects = project.UpdateSubmission(next.Projects, projectID, submissionID, upd)

		p, _ = project.Find(next.Projects, projectID)
		i := slices.IndexFunc(p.Submissions, func(sub project.Submission) bool { return sub.ID == submissionID })
		updated = p.Submissions[i]

		return []Collection{CollectionProjects}, nil
	})
	if err != nil {
		return project.Submission{}, err
	}

	return updated, nil
}

// Timeline lists every submission across projects, most recent first.
func (s *Service) Timeline() []project.TimelineEntry {
	var out []project.TimelineEntry

	s.read(func(st State) { out = project.Timeline(st.Projects) })

	return out
}

func (s *Service) ProjectFinancials(id string) (project.Financials, error) {
	p, err := s.GetProject(id)
	if err != nil {
		return project.Financials{}, err
	}

	return project.ComputeFinancials(p), nil
}
