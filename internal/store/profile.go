package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/morepeace/manyora/internal/profile"
)

// ErrProfileNotFound is returned when a profile name has no stored record.
var ErrProfileNotFound = errors.New("profile not found")

const (
	profileKeyPrefix = "profile/"
	activeKey        = "active"
)

// profileRepo implements ProfileRepo on Badger. Each profile is stored as a
// JSON blob under profile/<name>; a separate "active" key holds the name of
// the profile saved most recently.
type profileRepo struct {
	kv *badger.DB
}

func profileKey(name string) []byte {
	return []byte(profileKeyPrefix + name)
}

func (r *profileRepo) Save(ctx context.Context, p *profile.Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}

	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	err = r.kv.Update(func(txn *badger.Txn) error {
		if err := txn.Set(profileKey(p.Name), blob); err != nil {
			return err
		}
		return txn.Set([]byte(activeKey), []byte(p.Name))
	})
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}
	return nil
}

func (r *profileRepo) Load(ctx context.Context, name string) (*profile.Profile, error) {
	var p profile.Profile

	err := r.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", name, err)
	}
	return &p, nil
}

func (r *profileRepo) LoadActive(ctx context.Context) (*profile.Profile, error) {
	var name string

	err := r.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(activeKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load active profile name: %w", err)
	}

	return r.Load(ctx, name)
}

func (r *profileRepo) SetActive(ctx context.Context, name string) error {
	err := r.kv.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(profileKey(name)); err != nil {
			return err
		}
		return txn.Set([]byte(activeKey), []byte(name))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("set active profile %q: %w", name, err)
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context) ([]string, error) {
	var names []string

	err := r.kv.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(profileKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, profileKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return names, nil
}

func (r *profileRepo) Delete(ctx context.Context, name string) error {
	err := r.kv.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(profileKey(name)); err != nil {
			return err
		}

		item, err := txn.Get([]byte(activeKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var active string
		if err := item.Value(func(val []byte) error {
			active = string(val)
			return nil
		}); err != nil {
			return err
		}

		if active == name {
			return txn.Delete([]byte(activeKey))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	return nil
}
