package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"liteboard/internal/domain/models"
)

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func projectQuery(projectID int64) url.Values {
	return url.Values{"projectid": {strconv.FormatInt(projectID, 10)}}
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodGet, idPath("/api/projects", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	body := map[string]string{"name": name, "description": description}
	var project models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var updated models.Project
	if err := c.do(ctx, http.MethodPut, idPath("/api/projects", project.ID), nil, project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/projects", id), nil, nil, nil)
}

// Content lists

// ListsByProject returns the project's lists in the store's order.
func (c *Client) ListsByProject(ctx context.Context, projectID int64) ([]models.List, error) {
	var lists []models.List
	if err := c.do(ctx, http.MethodGet, "/api/content_lists", projectQuery(projectID), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) GetList(ctx context.Context, id int64) (*models.List, error) {
	var list models.List
	if err := c.do(ctx, http.MethodGet, idPath("/api/content_lists", id), nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) CreateList(ctx context.Context, list *models.List) (*models.List, error) {
	var created models.List
	if err := c.do(ctx, http.MethodPost, "/api/content_lists", nil, list, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateList replaces the whole list document, item sequence included.
func (c *Client) UpdateList(ctx context.Context, list *models.List) (*models.List, error) {
	var updated models.List
	if err := c.do(ctx, http.MethodPut, idPath("/api/content_lists", list.ID), nil, list, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/content_lists", id), nil, nil, nil)
}

// Content entries

// ListEntries returns every entry of the session user.
func (c *Client) ListEntries(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.do(ctx, http.MethodGet, "/api/content_entries", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EntriesByProject returns the entry records of one project.
func (c *Client) EntriesByProject(ctx context.Context, projectID int64) ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.do(ctx, http.MethodGet, "/api/content_entries", projectQuery(projectID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	var entry models.Entry
	if err := c.do(ctx, http.MethodGet, idPath("/api/content_entries", id), nil, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	var created models.Entry
	if err := c.do(ctx, http.MethodPost, "/api/content_entries", nil, entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	var updated models.Entry
	if err := c.do(ctx, http.MethodPut, idPath("/api/content_entries", entry.ID), nil, entry, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/content_entries", id), nil, nil, nil)
}

// Session

// Login asks the store for a session by username (dev stores only). The
// session cookie lands in the client's jar; see SessionToken.
func (c *Client) Login(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Username: username}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
