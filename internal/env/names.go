package env

import (
	"os/user"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LookupFunc resolves a numeric id to a name.
type LookupFunc func(id string) (string, error)

// Names caches user and group name lookups. It is shared by every worker
// rendering cells, so concurrent misses for the same id are collapsed into
// one lookup.
type Names struct {
	lookupUser  LookupFunc
	lookupGroup LookupFunc

	users  sync.Map // uint32 -> string ("" when unknown)
	groups sync.Map
	flight singleflight.Group
}

// NewNames returns a cache using the given lookups. Nil lookups use the
// system user and group databases.
func NewNames(lookupUser, lookupGroup LookupFunc) *Names {
	if lookupUser == nil {
		lookupUser = func(id string) (string, error) {
			u, err := user.LookupId(id)
			if err != nil {
				return "", err
			}
			return u.Username, nil
		}
	}
	if lookupGroup == nil {
		lookupGroup = func(id string) (string, error) {
			g, err := user.LookupGroupId(id)
			if err != nil {
				return "", err
			}
			return g.Name, nil
		}
	}
	return &Names{lookupUser: lookupUser, lookupGroup: lookupGroup}
}

// User returns the name of uid, or false if it has no entry.
func (n *Names) User(uid uint32) (string, bool) {
	return n.resolve(&n.users, "u", uid, n.lookupUser)
}

// Group returns the name of gid, or false if it has no entry.
func (n *Names) Group(gid uint32) (string, bool) {
	return n.resolve(&n.groups, "g", gid, n.lookupGroup)
}

func (n *Names) resolve(cache *sync.Map, kind string, id uint32, lookup LookupFunc) (string, bool) {
	if v, ok := cache.Load(id); ok {
		name := v.(string)
		return name, name != ""
	}

	key := strconv.FormatUint(uint64(id), 10)
	v, _, _ := n.flight.Do(kind+key, func() (any, error) {
		if v, ok := cache.Load(id); ok {
			return v, nil
		}
		name, err := lookup(key)
		if err != nil {
			name = ""
		}
		cache.Store(id, name)
		return name, nil
	})
	name := v.(string)
	return name, name != ""
}
