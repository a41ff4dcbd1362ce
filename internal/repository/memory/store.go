// Package memory implements the repository interfaces on top of process
// memory. It backs DATABASE_URL=memory local runs and the test suites, and
// mirrors the constraints the Postgres schema enforces: unique emails,
// foreign keys and cascading deletes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	last time.Time

	users    map[string]*repository.User
	clients  map[string]*repository.Client
	projects map[string]*repository.Project
	tasks    map[string]*repository.Task
	links    map[string]*repository.DeliverableLink
	surveys  []*repository.Survey
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*repository.User),
		clients:  make(map[string]*repository.Client),
		projects: make(map[string]*repository.Project),
		tasks:    make(map[string]*repository.Task),
		links:    make(map[string]*repository.DeliverableLink),
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		UserRepo:    &userRepo{s},
		ClientRepo:  &clientRepo{s},
		ProjectRepo: &projectRepo{s},
		SurveyRepo:  &surveyRepo{s},
		TaskRepo:    &taskRepo{s},
		LinkRepo:    &linkRepo{s},
	}
}

// tick returns a strictly increasing timestamp so created_at ordering is stable.
// Callers hold s.mu.
func (s *Store) tick() time.Time {
	now := time.Now()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

func newID() string {
	return uuid.NewString()
}

func sameEmail(a, b *string) bool {
	return a != nil && b != nil && *a != "" && strings.EqualFold(*a, *b)
}

// ============================================
// Users
// ============================================

type userRepo struct{ s *Store }

func copyUser(u *repository.User) *repository.User {
	c := *u
	return &c
}

func (r *userRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(ctx context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return repository.ErrDuplicate
	}
	user.ID = newID()
	user.CreatedAt = r.s.tick()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u, ok := r.s.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]*repository.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*repository.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *repository.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repository.ErrDuplicate
	}
	user.UpdatedAt = r.s.tick()
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	return nil
}

// ============================================
// Clients
// ============================================

type clientRepo struct{ s *Store }

func copyClient(c *repository.Client) *repository.Client {
	cp := *c
	return &cp
}

func (r *clientRepo) emailTaken(email *string, exceptID string) bool {
	for _, c := range r.s.clients {
		if c.ID != exceptID && sameEmail(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *clientRepo) Create(ctx context.Context, client *repository.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(client.Email, "") {
		return repository.ErrDuplicate
	}
	client.ID = newID()
	client.CreatedAt = r.s.tick()
	client.UpdatedAt = client.CreatedAt
	r.s.clients[client.ID] = copyClient(client)
	return nil
}

func (r *clientRepo) FindByID(ctx context.Context, id string) (*repository.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c, ok := r.s.clients[id]; ok {
		return copyClient(c), nil
	}
	return nil, nil
}

func (r *clientRepo) FindByEmail(ctx context.Context, email string) (*repository.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clients {
		if sameEmail(c.Email, &email) {
			return copyClient(c), nil
		}
	}
	return nil, nil
}

func (r *clientRepo) FindAll(ctx context.Context) ([]*repository.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	clients := make([]*repository.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		clients = append(clients, copyClient(c))
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].CreatedAt.After(clients[j].CreatedAt) })
	return clients, nil
}

func (r *clientRepo) Update(ctx context.Context, client *repository.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.clients[client.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(client.Email, client.ID) {
		return repository.ErrDuplicate
	}
	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = r.s.tick()
	r.s.clients[client.ID] = copyClient(client)
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for pid, p := range r.s.projects {
		if p.ClientID == id {
			r.s.deleteProjectLocked(pid)
		}
	}
	delete(r.s.clients, id)
	return nil
}

// ============================================
// Projects
// ============================================

type projectRepo struct{ s *Store }

func (s *Store) copyProject(p *repository.Project) *repository.Project {
	cp := *p
	cp.Tasks = nil
	cp.Links = nil
	if c, ok := s.clients[p.ClientID]; ok {
		cp.Client = copyClient(c)
	}
	return &cp
}

func (s *Store) deleteProjectLocked(id string) {
	for tid, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, tid)
		}
	}
	for lid, l := range s.links {
		if l.ProjectID == id {
			delete(s.links, lid)
		}
	}
	delete(s.projects, id)
}

func (r *projectRepo) Create(ctx context.Context, project *repository.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.clients[project.ClientID]; !ok {
		return repository.ErrForeignKey
	}
	project.ID = newID()
	project.CreatedAt = r.s.tick()
	project.UpdatedAt = project.CreatedAt
	stored := *project
	stored.Client, stored.Tasks, stored.Links = nil, nil, nil
	r.s.projects[project.ID] = &stored
	return nil
}

func (r *projectRepo) FindByID(ctx context.Context, id string) (*repository.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.projects[id]; ok {
		return r.s.copyProject(p), nil
	}
	return nil, nil
}

func (r *projectRepo) Find(ctx context.Context, filter repository.ProjectFilter) ([]*repository.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var projects []*repository.Project
	for _, p := range r.s.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		projects = append(projects, r.s.copyProject(p))
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	return projects, nil
}

func (r *projectRepo) Update(ctx context.Context, project *repository.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.projects[project.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.clients[project.ClientID]; !ok {
		return repository.ErrForeignKey
	}
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = r.s.tick()
	stored := *project
	stored.Client, stored.Tasks, stored.Links = nil, nil, nil
	r.s.projects[project.ID] = &stored
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.deleteProjectLocked(id)
	return nil
}

// ============================================
// Tasks
// ============================================

type taskRepo struct{ s *Store }

func copyTask(t *repository.Task) *repository.Task {
	c := *t
	return &c
}

func (r *taskRepo) Create(ctx context.Context, task *repository.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[task.ProjectID]; !ok {
		return repository.ErrForeignKey
	}
	task.ID = newID()
	task.CreatedAt = r.s.tick()
	r.s.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepo) FindByID(ctx context.Context, id string) (*repository.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if t, ok := r.s.tasks[id]; ok {
		return copyTask(t), nil
	}
	return nil, nil
}

func (r *taskRepo) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*repository.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var tasks []*repository.Task
	for _, t := range r.s.tasks {
		if wanted[t.ProjectID] {
			tasks = append(tasks, copyTask(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (r *taskRepo) Update(ctx context.Context, task *repository.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tasks, id)
	return nil
}

// ============================================
// Links
// ============================================

type linkRepo struct{ s *Store }

func copyLink(l *repository.DeliverableLink) *repository.DeliverableLink {
	c := *l
	return &c
}

func (r *linkRepo) Create(ctx context.Context, link *repository.DeliverableLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[link.ProjectID]; !ok {
		return repository.ErrForeignKey
	}
	link.ID = newID()
	link.CreatedAt = r.s.tick()
	r.s.links[link.ID] = copyLink(link)
	return nil
}

func (r *linkRepo) FindByID(ctx context.Context, id string) (*repository.DeliverableLink, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if l, ok := r.s.links[id]; ok {
		return copyLink(l), nil
	}
	return nil, nil
}

func (r *linkRepo) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*repository.DeliverableLink, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var links []*repository.DeliverableLink
	for _, l := range r.s.links {
		if wanted[l.ProjectID] {
			links = append(links, copyLink(l))
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].CreatedAt.After(links[j].CreatedAt) })
	return links, nil
}

func (r *linkRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.links, id)
	return nil
}

// ============================================
// Surveys
// ============================================

type surveyRepo struct{ s *Store }

func (r *surveyRepo) Create(ctx context.Context, survey *repository.Survey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	survey.ID = newID()
	survey.CreatedAt = r.s.tick()
	cp := *survey
	r.s.surveys = append(r.s.surveys, &cp)
	return nil
}

func (r *surveyRepo) FindAll(ctx context.Context) ([]*repository.Survey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	surveys := make([]*repository.Survey, 0, len(r.s.surveys))
	for i := len(r.s.surveys) - 1; i >= 0; i-- {
		cp := *r.s.surveys[i]
		surveys = append(surveys, &cp)
	}
	return surveys, nil
}

func (r *surveyRepo) Totals(ctx context.Context) (*repository.SurveyTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t := &repository.SurveyTotals{}
	for _, s := range r.s.surveys {
		t.Count++
		t.SumSatisfaction += int64(s.SatisfactionRating)
		t.SumEaseOfUse += int64(s.EaseOfUseRating)
		if s.WouldRecommend {
			t.RecommendCount++
		}
	}
	return t, nil
}
