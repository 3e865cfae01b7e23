package fmstorage

import (
	"path/filepath"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"github.com/sgostarter/libquant/registry"
)

// NewFMStorage keeps all curves in memory and mirrors them to root/curves.json.
func NewFMStorage(root string, storage stg.FileStorage, logger l.Wrapper) registry.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &fmStorageImpl{
		logger: logger.WithFields(l.StringField(l.ClsKey, "fmStorageImpl")),
		curves: mwf.NewMemWithFile[map[string]*registry.Descriptor, mwf.Serial, mwf.Lock](
			make(map[string]*registry.Descriptor), &mwf.JSONSerial{}, &sync.RWMutex{},
			filepath.Join(root, "curves.json"), storage),
	}
}

type fmStorageImpl struct {
	logger l.Wrapper
	curves *mwf.MemWithFile[map[string]*registry.Descriptor, mwf.Serial, mwf.Lock]
}

func (impl *fmStorageImpl) Load(name string) (d *registry.Descriptor, err error) {
	impl.curves.Read(func(m map[string]*registry.Descriptor) {
		if od, ok := m[name]; ok {
			d = cloneDescriptor(od)
		} else {
			err = commerr.ErrNotFound
		}
	})

	return
}

func (impl *fmStorageImpl) Save(d *registry.Descriptor) error {
	if d == nil {
		return commerr.ErrInvalidArgument
	}

	if err := registry.CheckName(d.Name); err != nil {
		return err
	}

	return impl.curves.Change(func(oldM map[string]*registry.Descriptor) (newM map[string]*registry.Descriptor, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string]*registry.Descriptor)
		}

		newM[d.Name] = cloneDescriptor(d)

		return
	})
}

func (impl *fmStorageImpl) Remove(name string) error {
	return impl.curves.Change(func(oldM map[string]*registry.Descriptor) (newM map[string]*registry.Descriptor, err error) {
		newM = oldM
		if len(newM) == 0 {
			newM = make(map[string]*registry.Descriptor)
		}

		if _, ok := newM[name]; !ok {
			err = commerr.ErrNotFound

			return
		}

		delete(newM, name)

		impl.logger.WithFields(l.StringField("name", name)).Debug("curve removed")

		return
	})
}

func (impl *fmStorageImpl) List() (names []string, err error) {
	impl.curves.Read(func(m map[string]*registry.Descriptor) {
		names = make([]string, 0, len(m))

		for name := range m {
			names = append(names, name)
		}
	})

	return
}

func cloneDescriptor(d *registry.Descriptor) *registry.Descriptor {
	nd := *d
	nd.Data = append([]byte(nil), d.Data...)

	return &nd
}
