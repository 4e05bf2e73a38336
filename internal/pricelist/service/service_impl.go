package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/klimatech/storefront/internal/config"
	"github.com/klimatech/storefront/internal/pricelist/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	LC  fx.Lifecycle
	Cfg config.Config
	Log *zap.Logger
}

// Service serves the flat price document. Writers are serialized behind a
// mutex and every write bumps the sentinel version and replaces the file
// atomically, so concurrent updates cannot tear or silently drop each other.
type Service struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	cached  *domain.PriceList
	watcher *fsnotify.Watcher
}

func New(p Params) domain.Service {
	s := &Service{
		path: p.Cfg.PriceListPath,
		log:  p.Log.Named("pricelist.service"),
	}

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.watch()
		},
		OnStop: func(ctx context.Context) error {
			return s.close()
		},
	})

	return s
}

// sentinel is the first element of the on-disk array.
type sentinel struct {
	Discount float64 `json:"Discount"`
	Version  int64   `json:"Version,omitempty"`
}

func (s *Service) Get(ctx context.Context) (*domain.PriceList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Service) SetDiscount(ctx context.Context, discount float64) error {
	if math.IsNaN(discount) || math.IsInf(discount, 0) || discount < 0 {
		return domain.ErrInvalidDiscount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return err
	}

	categories, err := domain.ApplyDiscount(list.Categories, discount)
	if err != nil {
		return err
	}

	list.Categories = categories
	list.Discount = discount
	list.Version++
	if err := s.storeLocked(list); err != nil {
		return err
	}
	s.log.Info("price list discount updated",
		zap.Float64("discount", discount),
		zap.Int64("version", list.Version),
	)
	return nil
}

func (s *Service) loadLocked() (*domain.PriceList, error) {
	if s.cached != nil {
		return s.cached.Clone(), nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read price list: %w", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, domain.ErrMalformed
	}
	if len(elements) == 0 {
		return nil, domain.ErrMalformed
	}

	var meta sentinel
	if err := json.Unmarshal(elements[0], &meta); err != nil {
		return nil, domain.ErrMalformed
	}

	list := &domain.PriceList{Discount: meta.Discount, Version: meta.Version}
	for _, element := range elements[1:] {
		var category domain.Category
		if err := json.Unmarshal(element, &category); err != nil {
			return nil, domain.ErrMalformed
		}
		list.Categories = append(list.Categories, category)
	}

	s.cached = list
	return list.Clone(), nil
}

func (s *Service) storeLocked(list *domain.PriceList) error {
	elements := make([]any, 0, len(list.Categories)+1)
	elements = append(elements, sentinel{Discount: list.Discount, Version: list.Version})
	for _, category := range list.Categories {
		elements = append(elements, category)
	}

	raw, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.cached = list
	return nil
}

// watch invalidates the cache when the document is replaced outside the
// process, so edits to the file land without a restart.
func (s *Service) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				s.mu.Lock()
				s.cached = nil
				s.mu.Unlock()
				s.log.Debug("price list reloaded", zap.String("path", s.path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("price list watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}

// close stops the watcher; the event goroutine exits when its channels
// close.
func (s *Service) close() error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}
