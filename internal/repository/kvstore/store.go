// Package kvstore implements the repositories over a flat key-value store.
//
// The backing store has no multi-key transactions, so every multi-key write
// follows a fixed ordering: the primary record is written first, then the
// secondary index entries, then the id registry. A crash mid-sequence can
// only leave a missing index (an existing record that an alternate-key
// lookup won't find, healed by retrying the write), never a dangling index
// pointing at a record that does not exist. Lookups tolerate the dangling
// case anyway by treating a broken second hop as not found.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/Oohevt/Eco-Learn/internal/kv"
)

// Key layout shared by all repositories in this package.
const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
	emailKeyPrefix    = "email:"
	chapterKeyPrefix  = "chapter:"
	chapterIDPrefix   = "chapter_id:"
	progressKeyPrefix = "progress:"
	favoriteKeyPrefix = "favorite:"

	chapterRegistryKey     = "chapter_ids"
	progressRegistryPrefix = "progress_ids:"
	favoriteRegistryPrefix = "favorite_ids:"
)

func getJSON(ctx context.Context, store kv.Store, key string, out any) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func putJSON(ctx context.Context, store kv.Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Put(ctx, key, data)
}

// registry is an explicit ordered id list kept alongside create/delete so
// enumeration stays possible on stores without prefix listing. Best effort:
// it is written after the records it tracks.
type registry struct {
	store kv.Store
	key   string
}

func (r registry) load(ctx context.Context) ([]string, error) {
	var ids []string
	if err := getJSON(ctx, r.store, r.key, &ids); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ids, nil
}

func (r registry) add(ctx context.Context, id string) error {
	ids, err := r.load(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return putJSON(ctx, r.store, r.key, append(ids, id))
}

func (r registry) remove(ctx context.Context, id string) error {
	ids, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := slices.DeleteFunc(ids, func(v string) bool { return v == id })
	if len(filtered) == 0 {
		return r.store.Delete(ctx, r.key)
	}
	return putJSON(ctx, r.store, r.key, filtered)
}
