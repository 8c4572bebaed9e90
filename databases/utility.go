package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int64) *mongoPaginate {
	return &mongoPaginate{
		limit: limit,
		page:  page,
	}
}

// getPaginatedOpts returns newest-first find options; a limit of zero means no paging
func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	opts := options.Find().SetSort(newestFirst())
	if mp.limit <= 0 {
		return opts
	}
	page := mp.page
	if page < 1 {
		page = 1
	}
	return opts.SetLimit(mp.limit).SetSkip(page*mp.limit - mp.limit)
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}}
}
