// Package redisstore keeps each entity kind in one Redis hash of JSON
// records keyed by id. Ids come from INCR on a per-kind sequence key, so
// they are unique across processes sharing the same Redis.
//
//	<prefix>:<kind>      hash  id -> JSON record
//	<prefix>:<kind>:seq  int   last minted id
package redisstore

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var (
	_ storage.UserRepository = (*Repository[entities.User])(nil)
	_ storage.BookRepository = (*Repository[entities.Book])(nil)
)

// updateExisting overwrites a record only while its field is present, so an
// update racing a delete cannot bring the record back.
var updateExisting = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// Repository stores one entity kind. Book ownership is not checked.
type Repository[E storage.Entity[E]] struct {
	client  redis.UniversalClient
	kind    string
	hashKey string
	seqKey  string
}

func NewRepository[E storage.Entity[E]](client redis.UniversalClient, prefix, kind string) *Repository[E] {
	hashKey := fmt.Sprintf("%s:%s", prefix, kind)
	return &Repository[E]{
		client:  client,
		kind:    kind,
		hashKey: hashKey,
		seqKey:  hashKey + ":seq",
	}
}

func (r *Repository[E]) Save(ctx context.Context, entity E) (E, error) {
	var zero E
	id := entity.GetID()
	isNew := id == 0

	if isNew {
		next, err := r.client.Incr(ctx, r.seqKey).Result()
		if err != nil {
			return zero, storage.Backend("mint "+r.kind+" id", err)
		}
		entity = entity.WithID(uint(next))
		id = entity.GetID()
	}

	payload, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s %d: %w", r.kind, id, err)
	}

	if isNew {
		if err := r.client.HSet(ctx, r.hashKey, field(id), payload).Err(); err != nil {
			return zero, storage.Backend("write "+r.kind, err)
		}
		return entity, nil
	}

	updated, err := updateExisting.Run(ctx, r.client, []string{r.hashKey}, field(id), payload).Int()
	if err != nil {
		return zero, storage.Backend("update "+r.kind, err)
	}
	if updated == 0 {
		return zero, storage.NotFound(r.kind, id)
	}
	return entity, nil
}

func (r *Repository[E]) FindByID(ctx context.Context, id uint) (E, bool, error) {
	var zero E
	raw, err := r.client.HGet(ctx, r.hashKey, field(id)).Bytes()
	switch {
	case err == redis.Nil:
		return zero, false, nil
	case err != nil:
		return zero, false, storage.Backend("find "+r.kind, err)
	}

	entity, err := r.decode(raw)
	if err != nil {
		return zero, false, err
	}
	return entity, true, nil
}

// FindAll returns every record ordered by id.
func (r *Repository[E]) FindAll(ctx context.Context) ([]E, error) {
	values, err := r.client.HVals(ctx, r.hashKey).Result()
	if err != nil {
		return nil, storage.Backend("list "+r.kind, err)
	}

	all := make([]E, 0, len(values))
	for _, v := range values {
		entity, err := r.decode([]byte(v))
		if err != nil {
			return nil, err
		}
		all = append(all, entity)
	}
	slices.SortFunc(all, func(a, b E) int {
		return cmp.Compare(a.GetID(), b.GetID())
	})
	return all, nil
}

func (r *Repository[E]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	exists, err := r.client.HExists(ctx, r.hashKey, field(id)).Result()
	if err != nil {
		return false, storage.Backend("exists "+r.kind, err)
	}
	return exists, nil
}

func (r *Repository[E]) DeleteByID(ctx context.Context, id uint) error {
	if err := r.client.HDel(ctx, r.hashKey, field(id)).Err(); err != nil {
		return storage.Backend("delete "+r.kind, err)
	}
	return nil
}

func (r *Repository[E]) decode(raw []byte) (E, error) {
	var entity E
	if err := json.Unmarshal(raw, &entity); err != nil {
		return entity, fmt.Errorf("failed to decode %s: %w", r.kind, err)
	}
	return entity, nil
}

func field(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
