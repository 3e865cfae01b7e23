package registry

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libquant/interp"
)

type cachedCurve struct {
	id        uint64
	updatedAt int64
	curve     *Curve
}

func NewRegistry(storage Storage, cfg *Config, logger l.Wrapper) Registry {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if storage == nil {
		logger.Error("no storage")

		return nil
	}

	if cfg == nil {
		cfg = &Config{}
	}

	cfg.fix()

	logger = logger.WithFields(l.StringField(l.ClsKey, "registryImpl"))

	impl := &registryImpl{
		logger:     logger,
		cfg:        cfg,
		storage:    storage,
		routineMan: routineman.NewRoutineMan(context.Background(), logger),
		cached:     cache.New(cfg.CacheTTL, cfg.CleanupInterval),
	}

	impl.init()

	return impl
}

type registryImpl struct {
	logger     l.Wrapper
	cfg        *Config
	storage    Storage
	routineMan routineman.RoutineMan

	lock   sync.Mutex
	cached *cache.Cache
}

func (impl *registryImpl) init() {
	for idx := range impl.cfg.Seeds {
		seed := &impl.cfg.Seeds[idx]
		logger := impl.logger.WithFields(l.StringField("seed", seed.Name))

		_, err := impl.storage.Load(seed.Name)
		if err == nil {
			continue
		}

		if !errors.Is(err, commerr.ErrNotFound) {
			logger.WithFields(l.ErrorField(err)).Error("load seed failed")

			continue
		}

		curve, err := seed.Build(impl.cfg.DefaultKind, impl.cfg.DefaultSlopeGenerator)
		if err != nil {
			logger.WithFields(l.ErrorField(err)).Error("build seed failed")

			continue
		}

		if err = impl.Put(seed.Name, curve); err != nil {
			logger.WithFields(l.ErrorField(err)).Error("save seed failed")
		}
	}

	if impl.cfg.ReloadInterval > 0 {
		impl.routineMan.StartRoutine(impl.reloadRoutine, "reloadRoutine")
	}
}

func (impl *registryImpl) TriggerStop() {
	impl.routineMan.TriggerStop()
}

func (impl *registryImpl) Wait() {
	impl.routineMan.Wait()
}

func (impl *registryImpl) Put(name string, curve interp.Mutable[float64, float64]) (err error) {
	if curve == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	d, err := Encode(name, curve)
	if err != nil {
		return
	}

	impl.lock.Lock()
	defer impl.lock.Unlock()

	if old, e := impl.storage.Load(name); e == nil {
		d.ID = old.ID
	} else {
		d.ID = snowflake.ID()
	}

	d.UpdatedAt = time.Now().UnixMilli()

	if err = impl.storage.Save(d); err != nil {
		return
	}

	impl.cached.Delete(name)
	impl.cached.SetDefault(name, &cachedCurve{
		id:        d.ID,
		updatedAt: d.UpdatedAt,
		curve:     interp.NewAnyMutable(curve.Clone()),
	})

	return
}

func (impl *registryImpl) Get(name string) (curve *Curve, err error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	c, err := impl.loadLocked(name)
	if err != nil {
		return
	}

	curve = c.curve.Share()

	return
}

func (impl *registryImpl) Eval(name string, x float64) (v float64, err error) {
	curve, err := impl.Get(name)
	if err != nil {
		return
	}

	defer curve.Release()

	v = curve.Eval(x)

	return
}

func (impl *registryImpl) Integrate(name string, from, to float64) (sum float64, err error) {
	curve, err := impl.Get(name)
	if err != nil {
		return
	}

	defer curve.Release()

	sum, err = curve.Integrate(from, to)

	return
}

// Update changes one knot value and writes the curve back. Handles returned
// by Get before the call keep the old knots.
func (impl *registryImpl) Update(name string, i int, value float64) (err error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	c, err := impl.loadLocked(name)
	if err != nil {
		return
	}

	if err = c.curve.Update(i, value); err != nil {
		return
	}

	d, err := Encode(name, c.curve.Mutable())
	if err == nil {
		d.ID = c.id
		d.UpdatedAt = time.Now().UnixMilli()

		err = impl.storage.Save(d)
	}

	if err != nil {
		impl.logger.WithFields(l.StringField("name", name), l.ErrorField(err)).Error("save curve failed")

		impl.cached.Delete(name)

		return
	}

	c.updatedAt = d.UpdatedAt

	return
}

func (impl *registryImpl) Delete(name string) (err error) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.cached.Delete(name)

	err = impl.storage.Remove(name)

	return
}

func (impl *registryImpl) Names() (names []string, err error) {
	names, err = impl.storage.List()
	if err != nil {
		return
	}

	sort.Strings(names)

	return
}

func (impl *registryImpl) loadLocked(name string) (c *cachedCurve, err error) {
	if i, ok := impl.cached.Get(name); ok {
		c, _ = i.(*cachedCurve)

		return
	}

	if err = CheckName(name); err != nil {
		return
	}

	d, err := impl.storage.Load(name)
	if err != nil {
		return
	}

	curve, err := Decode(d)
	if err != nil {
		impl.logger.WithFields(l.StringField("name", name), l.ErrorField(err)).Error("decode curve failed")

		return
	}

	c = &cachedCurve{
		id:        d.ID,
		updatedAt: d.UpdatedAt,
		curve:     interp.NewAnyMutable(curve),
	}

	impl.cached.SetDefault(name, c)

	return
}

func (impl *registryImpl) reloadRoutine(ctx context.Context, _ func() bool) {
	ticker := time.NewTicker(impl.cfg.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			impl.dropStale()
		}
	}
}

// dropStale evicts cached curves whose stored copy is newer or gone.
func (impl *registryImpl) dropStale() {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	for name, item := range impl.cached.Items() {
		c, ok := item.Object.(*cachedCurve)
		if !ok {
			continue
		}

		d, err := impl.storage.Load(name)
		if err != nil && !errors.Is(err, commerr.ErrNotFound) {
			impl.logger.WithFields(l.StringField("name", name), l.ErrorField(err)).Error("reload curve failed")

			continue
		}

		if err != nil || d.UpdatedAt != c.updatedAt {
			impl.logger.WithFields(l.StringField("name", name)).Debug("drop stale curve")

			impl.cached.Delete(name)
		}
	}
}
