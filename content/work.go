package content

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// WorkAPI is the remote endpoint set for work items.
type WorkAPI interface {
	ListWork(ctx context.Context) ([]WorkItem, error)
	CreateWork(ctx context.Context, item WorkItem) (WorkItem, error)
	UpdateWork(ctx context.Context, item WorkItem) (WorkItem, error)
	DeleteWork(ctx context.Context, id string) error
}

// ServiceAPI is the remote endpoint set for services. The remote API has no
// delete endpoint for services.
type ServiceAPI interface {
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, s Service) (Service, error)
	UpdateService(ctx context.Context, s Service) (Service, error)
}

// WorkRepository is the server-backed store of work items. It keeps no local
// copy: every read goes to the remote API.
type WorkRepository struct {
	api WorkAPI
	env *env
}

var _ Repository[WorkItem] = (*WorkRepository)(nil)

// List fetches all work items. On failure the result is degraded and carries
// an empty list.
func (r *WorkRepository) List(ctx context.Context) Result[[]WorkItem] {
	items, err := r.api.ListWork(ctx)
	if err != nil {
		r.env.log.Warn("fetch work items failed", zap.Error(err))
		return degraded([]WorkItem{}, err)
	}
	if items == nil {
		items = []WorkItem{}
	}
	return ok(items)
}

// Get fetches the list and picks the item with the given id.
func (r *WorkRepository) Get(ctx context.Context, id string) Result[WorkItem] {
	list := r.List(ctx)
	if list.Status == StatusDegraded {
		return Result[WorkItem]{Status: StatusDegraded, Err: list.Err}
	}
	for _, it := range list.Value {
		if it.ID == id {
			return ok(it)
		}
	}
	return notFound[WorkItem]()
}

// ForService fetches the work items linked to a service.
func (r *WorkRepository) ForService(ctx context.Context, serviceID string) Result[[]WorkItem] {
	list := r.List(ctx)
	out := []WorkItem{}
	for _, it := range list.Value {
		if it.ServiceID == serviceID {
			out = append(out, it)
		}
	}
	list.Value = out
	return list
}

// Save creates the item when it has no id and updates it otherwise, returning
// the server's representation.
func (r *WorkRepository) Save(ctx context.Context, item WorkItem) Result[WorkItem] {
	var (
		saved WorkItem
		err   error
	)
	if item.ID == "" {
		saved, err = r.api.CreateWork(ctx, item)
	} else {
		saved, err = r.api.UpdateWork(ctx, item)
	}
	if err != nil {
		r.env.log.Error("save work item failed", zap.String("id", item.ID), zap.Error(err))
		return failed[WorkItem](fmt.Errorf("save work item: %w", err))
	}
	return ok(saved)
}

// Delete removes the item on the remote API.
func (r *WorkRepository) Delete(ctx context.Context, id string) Result[bool] {
	if err := r.api.DeleteWork(ctx, id); err != nil {
		r.env.log.Error("delete work item failed", zap.String("id", id), zap.Error(err))
		return failed[bool](fmt.Errorf("delete work item: %w", err))
	}
	return ok(true)
}

const placeholderImage = "/placeholder.svg"

// ServiceRepository is the server-backed store of services.
type ServiceRepository struct {
	api ServiceAPI
	env *env
}

var _ Repository[Service] = (*ServiceRepository)(nil)

// List fetches all services, degrading to an empty list on failure.
func (r *ServiceRepository) List(ctx context.Context) Result[[]Service] {
	services, err := r.api.ListServices(ctx)
	if err != nil {
		r.env.log.Warn("fetch services failed", zap.Error(err))
		return degraded([]Service{}, err)
	}
	if services == nil {
		services = []Service{}
	}
	return ok(services)
}

// Get fetches the list and picks the service with the given id.
func (r *ServiceRepository) Get(ctx context.Context, id string) Result[Service] {
	list := r.List(ctx)
	if list.Status == StatusDegraded {
		return Result[Service]{Status: StatusDegraded, Err: list.Err}
	}
	for _, s := range list.Value {
		if s.ID == id {
			return ok(s)
		}
	}
	return notFound[Service]()
}

// Save fills presentation defaults and then creates or updates the service.
// A new service is given an id before it is posted; the choice between create
// and update follows whether the caller supplied one.
func (r *ServiceRepository) Save(ctx context.Context, s Service) Result[Service] {
	isNew := s.ID == ""
	if isNew {
		s.ID = r.env.newID()
	}
	if s.Icon == "" {
		s.Icon = placeholderImage
	}
	if s.Image == "" {
		s.Image = placeholderImage
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	if s.PortfolioItems == nil {
		s.PortfolioItems = []PortfolioItem{}
	}

	var (
		saved Service
		err   error
	)
	if isNew {
		saved, err = r.api.CreateService(ctx, s)
	} else {
		saved, err = r.api.UpdateService(ctx, s)
	}
	if err != nil {
		r.env.log.Error("save service failed", zap.String("id", s.ID), zap.Error(err))
		return failed[Service](fmt.Errorf("save service: %w", err))
	}
	return ok(saved)
}

// Delete is not offered by the remote API and always fails.
func (r *ServiceRepository) Delete(ctx context.Context, id string) Result[bool] {
	return failed[bool](fmt.Errorf("delete service %q: %w", id, errors.ErrUnsupported))
}
