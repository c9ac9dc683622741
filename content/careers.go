package content

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CareerRepository is the fixture-backed store of job postings.
type CareerRepository struct {
	jobs *Collection[JobPosting]
	env  *env
}

var _ Repository[JobPosting] = (*CareerRepository)(nil)

func newCareerRepository(seed []JobPosting, e *env) *CareerRepository {
	return &CareerRepository{
		jobs: NewCollection(func(j JobPosting) string { return j.ID }, seed),
		env:  e,
	}
}

func (r *CareerRepository) List(ctx context.Context) Result[[]JobPosting] {
	return ok(r.jobs.All())
}

func (r *CareerRepository) Get(ctx context.Context, id string) Result[JobPosting] {
	if j, found := r.jobs.Get(id); found {
		return ok(j)
	}
	return notFound[JobPosting]()
}

// Save inserts or replaces a posting by id, generating the id and the posted
// date when they are missing.
func (r *CareerRepository) Save(ctx context.Context, j JobPosting) Result[JobPosting] {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return failed[JobPosting](&ValidationError{Field: "title", Msg: "is required"})
	}
	if j.ID == "" {
		j.ID = r.env.newID()
	}
	if j.Posted == "" {
		j.Posted = Today(r.env.now())
	}
	j.Requirements = normalizeList(j.Requirements)
	j.Responsibilities = normalizeList(j.Responsibilities)

	replaced := r.jobs.Upsert(j)
	r.env.log.Debug("job posting saved", zap.String("id", j.ID), zap.Bool("replaced", replaced))
	return ok(j)
}

func (r *CareerRepository) Delete(ctx context.Context, id string) Result[bool] {
	if !r.jobs.Delete(id) {
		return notFound[bool]()
	}
	r.env.log.Debug("job posting deleted", zap.String("id", id))
	return ok(true)
}

// Count returns the number of postings, active or not.
func (r *CareerRepository) Count() int {
	return r.jobs.Len()
}

// Active returns the postings currently open to applicants.
func (r *CareerRepository) Active(ctx context.Context) Result[[]JobPosting] {
	out := []JobPosting{}
	for _, j := range r.jobs.All() {
		if j.IsActive {
			out = append(out, j)
		}
	}
	return ok(out)
}
