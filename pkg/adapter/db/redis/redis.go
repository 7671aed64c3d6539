// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package redis implements the cars repository on a Redis server.
//
// Each car is kept as its JSON encoded CarDTO in the <prefix>car:<id>
// key. The <prefix>cars sorted set indexes all IDs (scored by the ID
// itself) and new IDs are taken from the <prefix>seq counter. All keys
// of one mutation are changed in a MULTI/EXEC transaction.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/momeni/car-catalog/pkg/adapter/restful/cardto"
	"github.com/momeni/car-catalog/pkg/core/cerr"
	"github.com/momeni/car-catalog/pkg/core/model"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key prefix which is used by New if an empty
// prefix is passed.
const DefaultPrefix = "catalog:"

// Repo is a cars repository which is backed by Redis.
type Repo struct {
	client *goredis.Client
	prefix string
}

// Open connects to the Redis server which is described by opts and
// checks the connection using a PING command.
func Open(ctx context.Context, opts *goredis.Options, prefix string) (*Repo, error) {
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %q: %w", opts.Addr, err)
	}
	return New(client, prefix), nil
}

// New instantiates a Repo which uses the client connection and keeps
// its keys under the given prefix.
func New(client *goredis.Client, prefix string) *Repo {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Repo{client: client, prefix: prefix}
}

// Close closes the underlying Redis client.
func (r *Repo) Close() error {
	return r.client.Close()
}

func (r *Repo) carKey(id int64) string {
	return r.prefix + "car:" + strconv.FormatInt(id, 10)
}

func (r *Repo) indexKey() string {
	return r.prefix + "cars"
}

func (r *Repo) seqKey() string {
	return r.prefix + "seq"
}

// List returns all cars ordered by their IDs.
func (r *Repo) List(ctx context.Context) ([]*model.Car, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("ZRANGE: %w", err)
	}
	if len(ids) == 0 {
		return []*model.Car{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, s := range ids {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("index member %q: %w", s, err)
		}
		keys = append(keys, r.carKey(id))
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("MGET: %w", err)
	}
	cars := make([]*model.Car, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // removed after ZRANGE
		}
		car, err := decode([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", keys[i], err)
		}
		cars = append(cars, car)
	}
	return cars, nil
}

// Get returns the car which is identified by id.
func (r *Repo) Get(ctx context.Context, id int64) (*model.Car, error) {
	b, err := r.client.Get(ctx, r.carKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, cerr.NotFound(fmt.Errorf("car %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("GET: %w", err)
	}
	return decode(b)
}

// Create stores car with the next ID of the sequence counter.
func (r *Repo) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("INCR: %w", err)
	}
	car = car.WithID(id)
	b, err := json.Marshal(cardto.ToCarDTO(car))
	if err != nil {
		return nil, fmt.Errorf("marshaling car: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, r.carKey(id), b, 0)
		pipe.ZAdd(ctx, r.indexKey(), goredis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storing car %d: %w", id, err)
	}
	return car, nil
}

// Update replaces the car with the same ID. The car key is only set
// if it exists already (SET XX), so a concurrent Delete is not undone.
func (r *Repo) Update(ctx context.Context, car *model.Car) (*model.Car, error) {
	b, err := json.Marshal(cardto.ToCarDTO(car))
	if err != nil {
		return nil, fmt.Errorf("marshaling car: %w", err)
	}
	ok, err := r.client.SetXX(ctx, r.carKey(car.ID()), b, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("SET XX: %w", err)
	}
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf("car %d", car.ID()))
	}
	return car, nil
}

// Delete removes the car which is identified by id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	var del *goredis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, r.carKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting car %d: %w", id, err)
	}
	if del.Val() == 0 {
		return cerr.NotFound(fmt.Errorf("car %d", id))
	}
	return nil
}

// Recreate removes all keys which start with the repository prefix,
// so the catalog becomes empty and IDs restart from one.
func (r *Repo) Recreate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("SCAN %q: %w", r.prefix+"*", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("DEL: %w", err)
	}
	return nil
}

func decode(b []byte) (*model.Car, error) {
	var dto cardto.CarDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("unmarshaling car: %w", err)
	}
	return cardto.ToDomainCar(dto)
}
