package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/nickzhog/storage-bench/internal/server/service"
	"github.com/nickzhog/storage-bench/pkg/logging"
)

// Factory открывает одно хранилище.
type Factory func(ctx context.Context) (service.Storage, error)

// Registry владеет открытыми хранилищами на все время жизни процесса.
type Registry struct {
	backends []service.Storage
	byName   map[string]service.Storage
	logger   *logging.Logger
}

// New открывает хранилища names в заданном порядке.
// Если одно из них не открылось, уже открытые закрываются.
func New(ctx context.Context, names []string, factories map[string]Factory, logger *logging.Logger) (*Registry, error) {
	if len(names) == 0 {
		return nil, errors.New("no backends configured")
	}

	r := &Registry{
		backends: make([]service.Storage, 0, len(names)),
		byName:   make(map[string]service.Storage, len(names)),
		logger:   logger,
	}

	for _, name := range names {
		if _, ok := r.byName[name]; ok {
			r.Close(ctx)
			return nil, fmt.Errorf("backend %q is listed twice", name)
		}

		factory, ok := factories[name]
		if !ok {
			r.Close(ctx)
			return nil, fmt.Errorf("unknown backend %q", name)
		}

		b, err := factory(ctx)
		if err != nil {
			r.Close(ctx)
			return nil, err
		}

		r.backends = append(r.backends, b)
		r.byName[name] = b
		logger.Tracef("backend %s ready", name)
	}

	return r, nil
}

// Backends возвращает хранилища в порядке конфигурации.
func (r *Registry) Backends() []service.Storage {
	out := make([]service.Storage, len(r.backends))
	copy(out, r.backends)
	return out
}

func (r *Registry) Backend(name string) (service.Storage, bool) {
	b, ok := r.byName[name]
	return b, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for _, b := range r.backends {
		names = append(names, b.Name())
	}
	return names
}

// Ping опрашивает все хранилища и возвращает первую ошибку.
func (r *Registry) Ping(ctx context.Context) error {
	for _, b := range r.backends {
		if err := b.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	return nil
}

// Close закрывает хранилища в обратном порядке.
func (r *Registry) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.backends) - 1; i >= 0; i-- {
		if err := r.backends[i].Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.backends[i].Name(), err))
		}
	}
	r.backends = nil
	r.byName = map[string]service.Storage{}
	return errors.Join(errs...)
}
