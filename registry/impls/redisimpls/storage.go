package redisimpls

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libquant/registry"
)

// NewRedisStorage keeps descriptors in the hash preKey+"curves". A save older
// than the stored copy is refused.
func NewRedisStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) registry.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "curvesStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &curvesStorage{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type curvesStorage struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *curvesStorage) Load(name string) (d *registry.Descriptor, err error) {
	bs, err := impl.redisCli.HGet(context.Background(), impl.curvesKey(), name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	d = &registry.Descriptor{}

	err = json.Unmarshal(bs, d)
	if err != nil {
		impl.logger.WithFields(l.StringField("name", name), l.ErrorField(err)).Error("invalid curve data")

		d = nil
	}

	return
}

func (impl *curvesStorage) Save(d *registry.Descriptor) (err error) {
	if d == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	if err = registry.CheckName(d.Name); err != nil {
		return
	}

	bs, err := json.Marshal(d)
	if err != nil {
		return
	}

	err = saveCurveScript.Run(context.Background(), impl.redisCli, []string{impl.curvesKey(), impl.updatedKey()},
		d.Name, bs, d.UpdatedAt).Err()

	return
}

func (impl *curvesStorage) Remove(name string) (err error) {
	n, err := removeCurveScript.Run(context.Background(), impl.redisCli, []string{impl.curvesKey(), impl.updatedKey()},
		name).Int()
	if err != nil {
		return
	}

	if n == 0 {
		err = commerr.ErrNotFound
	}

	return
}

func (impl *curvesStorage) List() (names []string, err error) {
	names, err = impl.redisCli.HKeys(context.Background(), impl.curvesKey()).Result()

	return
}

//
//
//

func (impl *curvesStorage) curvesKey() string {
	return impl.preKey + "curves"
}

func (impl *curvesStorage) updatedKey() string {
	return impl.preKey + "curves:updated_at"
}
