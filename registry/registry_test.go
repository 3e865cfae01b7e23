// nolint
package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/pathutils"
	"github.com/sgostarter/libquant/interp"
	"github.com/sgostarter/libquant/registry"
	"github.com/sgostarter/libquant/registry/impls/fmstorage"
	"github.com/sgostarter/libquant/registry/impls/yamlstorage"
	"github.com/stretchr/testify/assert"
)

const (
	utRoot = "ut-data"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	code := m.Run()

	_ = os.RemoveAll(utRoot)

	os.Exit(code)
}

func utStorages(t *testing.T) map[string]registry.Storage {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	return map[string]registry.Storage{
		"fm":   fmstorage.NewFMStorage(filepath.Join(utRoot, "fm"), nil, nil),
		"yaml": yamlstorage.NewYAMLStorage(filepath.Join(utRoot, "yaml")),
	}
}

func TestRegistry(t *testing.T) {
	for name, storage := range utStorages(t) {
		t.Run(name, func(t *testing.T) {
			reg := registry.NewRegistry(storage, nil, nil)
			defer func() {
				reg.TriggerStop()
				reg.Wait()
			}()

			_, err := reg.Get("a")
			assert.True(t, errors.Is(err, commerr.ErrNotFound))

			lin, err := interp.NewLinear([]float64{1, 2, 4}, []float64{10, 20, 0})
			assert.Nil(t, err)

			assert.Nil(t, reg.Put("a", lin))

			// the registry keeps its own copy
			assert.Nil(t, lin.Update(0, 99))

			v, err := reg.Eval("a", 1.5)
			assert.Nil(t, err)
			assert.InDelta(t, 15, v, 1e-9)

			sum, err := reg.Integrate("a", 1, 4)
			assert.Nil(t, err)
			assert.InDelta(t, 35, sum, 1e-9)

			held, err := reg.Get("a")
			assert.Nil(t, err)

			assert.Nil(t, reg.Update("a", 2, 40))
			assert.True(t, errors.Is(reg.Update("a", 3, 40), interp.ErrOutOfRange))

			assert.InDelta(t, 10, held.Eval(3), 1e-9)
			held.Release()

			v, err = reg.Eval("a", 3)
			assert.Nil(t, err)
			assert.InDelta(t, 30, v, 1e-9)

			// a fresh registry on the same storage sees the update
			reg2 := registry.NewRegistry(storage, nil, nil)

			v, err = reg2.Eval("a", 3)
			assert.Nil(t, err)
			assert.InDelta(t, 30, v, 1e-9)

			_, err = reg2.Integrate("missing", 0, 1)
			assert.True(t, errors.Is(err, commerr.ErrNotFound))

			names, err := reg2.Names()
			assert.Nil(t, err)
			assert.EqualValues(t, []string{"a"}, names)

			assert.Nil(t, reg2.Delete("a"))
			assert.True(t, errors.Is(reg2.Delete("a"), commerr.ErrNotFound))

			_, err = reg2.Get("a")
			assert.True(t, errors.Is(err, commerr.ErrNotFound))
		})
	}
}

func TestRegistrySeeds(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	cfgFile := filepath.Join(utRoot, "registry.yaml")

	err := os.WriteFile(cfgFile, []byte(`
cacheTTL: 1m
defaultKind: cubic_spline
defaultSlopeGenerator: central_difference
seeds:
  - name: rates
    knots:
      - [0, 1]
      - [1, 2]
      - [2, 4]
  - name: steps
    kind: piecewise_constant
    partitionRatio: 0.5
    rightContinuous: true
    knots:
      - grid: 0
        value: 5
      - grid: 10
        value: 7
  - name: broken
    kind: linear
    knots:
      - [0, 1]
`), 0600)
	assert.Nil(t, err)

	cfg, err := registry.LoadConfig(cfgFile)
	assert.Nil(t, err)
	assert.EqualValues(t, time.Minute, cfg.CacheTTL)
	assert.Len(t, cfg.Seeds, 3)

	storage := yamlstorage.NewYAMLStorage(filepath.Join(utRoot, "curves"))
	reg := registry.NewRegistry(storage, cfg, nil)

	names, err := reg.Names()
	assert.Nil(t, err)
	assert.EqualValues(t, []string{"rates", "steps"}, names)

	rates, err := reg.Get("rates")
	assert.Nil(t, err)

	sp, ok := interp.AsMutable[*interp.CubicSpline[float64, float64]](rates)
	assert.True(t, ok)
	assert.EqualValues(t, interp.CentralDifferenceName, sp.SlopeGenerator().Name())
	assert.InDelta(t, 2, rates.Eval(1), 1e-12)

	v, err := reg.Eval("steps", 6)
	assert.Nil(t, err)
	assert.EqualValues(t, 7, v)

	// seeds never overwrite stored curves
	assert.Nil(t, reg.Update("steps", 0, 1))

	reg2 := registry.NewRegistry(storage, cfg, nil)

	v, err = reg2.Eval("steps", 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)
}

func TestRegistryReload(t *testing.T) {
	_ = os.RemoveAll(utRoot)
	_ = pathutils.MustDirExists(utRoot)

	storage := fmstorage.NewFMStorage(utRoot, nil, nil)

	reg1 := registry.NewRegistry(storage, &registry.Config{ReloadInterval: 10 * time.Millisecond}, nil)
	reg2 := registry.NewRegistry(storage, nil, nil)

	defer func() {
		reg1.TriggerStop()
		reg1.Wait()
	}()

	lin, err := interp.NewLinear([]float64{0, 1}, []float64{0, 1})
	assert.Nil(t, err)

	assert.Nil(t, reg1.Put("r", lin))

	v, err := reg1.Eval("r", 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 1, v)

	time.Sleep(5 * time.Millisecond)
	assert.Nil(t, reg2.Update("r", 1, 8))

	assert.Eventually(t, func() bool {
		v, err := reg1.Eval("r", 1)

		return err == nil && v == 8
	}, time.Second, 10*time.Millisecond)
}
