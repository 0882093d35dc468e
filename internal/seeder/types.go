package seeder

import (
	"fmt"

	"github.com/Rana718/filldb/internal/config"
	"github.com/Rana718/filldb/internal/sampler"
)

const (
	TableUser            = "user"
	TablePost            = "post"
	TableComment         = "comment"
	TablePersonalMessage = "personal_message"
	TableSubscription    = "subscription"
	TablePostLike        = "post_like"
	TableCommentLike     = "comment_like"
)

type SeedConfig struct {
	Quotas   config.Quotas // Rows per table
	Truncate bool          // Clear tables before seeding
}

type TableInfo struct {
	Name         string
	PrimaryKey   string // Generated key returned on insert, empty if none is needed
	Dependencies []string
}

// Tables describes the socio schema in seeding order.
func Tables() []*TableInfo {
	return []*TableInfo{
		{Name: TableUser, PrimaryKey: "id"},
		{Name: TablePost, PrimaryKey: "id", Dependencies: []string{TableUser}},
		{Name: TableComment, PrimaryKey: "id", Dependencies: []string{TableUser, TablePost}},
		{Name: TablePersonalMessage, Dependencies: []string{TableUser}},
		{Name: TableSubscription, Dependencies: []string{TableUser}},
		{Name: TablePostLike, Dependencies: []string{TablePost, TableUser}},
		{Name: TableCommentLike, Dependencies: []string{TableComment, TableUser}},
	}
}

func quotaFor(q config.Quotas, table string) int {
	switch table {
	case TableUser:
		return q.Users
	case TablePost:
		return q.Posts
	case TableComment:
		return q.Comments
	case TablePersonalMessage:
		return q.Messages
	case TableSubscription:
		return q.Subscriptions
	case TablePostLike:
		return q.PostLikes
	case TableCommentLike:
		return q.CommentLikes
	default:
		return 0
	}
}

// Pools holds the identifiers generated by every completed phase, keyed by
// table. A phase writes its own pool once and only reads the others.
type Pools map[string][]int64

func (p Pools) get(table string) ([]int64, error) {
	ids := p[table]
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no %s rows generated", sampler.ErrEmptyPool, table)
	}
	return ids, nil
}
