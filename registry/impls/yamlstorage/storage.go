package yamlstorage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libquant/registry"
	"gopkg.in/yaml.v3"
)

const fileExt = ".yaml"

// curveFile is the on disk form; data is kept as plain YAML so files can be
// edited by hand.
type curveFile struct {
	registry.Descriptor `yaml:",inline"`

	Data interface{} `yaml:"data"`
}

// NewYAMLStorage writes one YAML file per curve under root.
func NewYAMLStorage(root string) registry.Storage {
	return &yamlStorage{
		root: root,
	}
}

type yamlStorage struct {
	root string
}

func (stg *yamlStorage) fileNameByName(name string) string {
	return path.Join(stg.root, name+fileExt)
}

func (stg *yamlStorage) Load(name string) (d *registry.Descriptor, err error) {
	if err = registry.CheckName(name); err != nil {
		return
	}

	bs, err := os.ReadFile(stg.fileNameByName(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = commerr.ErrNotFound
		}

		return
	}

	var f curveFile

	if err = yaml.Unmarshal(bs, &f); err != nil {
		return
	}

	d = &f.Descriptor

	d.Data, err = json.Marshal(f.Data)
	if err != nil {
		d = nil
	}

	return
}

func (stg *yamlStorage) Save(d *registry.Descriptor) (err error) {
	if d == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	if err = registry.CheckName(d.Name); err != nil {
		return
	}

	f := curveFile{
		Descriptor: *d,
	}

	if err = json.Unmarshal(d.Data, &f.Data); err != nil {
		return
	}

	_ = os.MkdirAll(stg.root, 0700)

	bs, err := yaml.Marshal(&f)
	if err != nil {
		return
	}

	err = os.WriteFile(stg.fileNameByName(d.Name), bs, 0600)

	return
}

func (stg *yamlStorage) Remove(name string) (err error) {
	if err = registry.CheckName(name); err != nil {
		return
	}

	err = os.Remove(stg.fileNameByName(name))
	if errors.Is(err, fs.ErrNotExist) {
		err = commerr.ErrNotFound
	}

	return
}

func (stg *yamlStorage) List() (names []string, err error) {
	entries, err := os.ReadDir(stg.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}

		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}

	return
}
