package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Rana718/filldb/internal/config"
	"github.com/Rana718/filldb/internal/database"
	"github.com/Rana718/filldb/internal/database/common"
	"github.com/Rana718/filldb/internal/sampler"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type phaseFunc func(ctx context.Context, pools Pools, quota int) ([]int64, error)

type Seeder struct {
	config  *config.Config
	adapter database.DatabaseAdapter
	source  DataSource
	log     *zap.Logger
	graph   *DependencyGraph
	phases  map[string]phaseFunc
	rng     *rand.Rand
	seed    int64
}

// NewSeeder connects to the configured database and returns a seeder backed
// by go-faker.
func NewSeeder(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Seeder, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to get database URL: %w", err)
	}

	adapter, err := database.Open(ctx, cfg.Database.Provider, dbURL)
	if err != nil {
		return nil, err
	}

	return New(cfg, adapter, nil, log), nil
}

// New builds a seeder around an already connected adapter. A nil source
// selects go-faker seeded with the run's random seed.
func New(cfg *config.Config, adapter database.DatabaseAdapter, source DataSource, log *zap.Logger) *Seeder {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if source == nil {
		source = NewFakerSource(seed)
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &Seeder{
		config:  cfg,
		adapter: adapter,
		source:  source,
		log:     log,
		graph:   NewDependencyGraph(),
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
	}
	for _, table := range Tables() {
		s.graph.AddTable(table)
	}
	s.phases = map[string]phaseFunc{
		TableUser:            s.seedUsers,
		TablePost:            s.seedPosts,
		TableComment:         s.seedComments,
		TablePersonalMessage: s.seedMessages,
		TableSubscription:    s.seedSubscriptions,
		TablePostLike:        s.seedPostLikes,
		TableCommentLike:     s.seedCommentLikes,
	}
	return s
}

func (s *Seeder) Close() error {
	return s.adapter.Close()
}

func (s *Seeder) RandomSeed() int64 {
	return s.seed
}

// Seed fills every table in dependency order inside one transaction. The
// first failing insert aborts the run and rolls everything back.
func (s *Seeder) Seed(ctx context.Context, seedConfig SeedConfig) (*Report, error) {
	if err := seedConfig.Quotas.Validate(); err != nil {
		return nil, err
	}

	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	if err := s.checkFeasible(order, seedConfig.Quotas); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:      uuid.NewString(),
		Provider:   s.config.Database.Provider,
		RandomSeed: s.seed,
		StartedAt:  time.Now(),
		Rows:       make(map[string]int, len(order)),
	}
	log := s.log.With(zap.String("run_id", report.RunID), zap.Int64("random_seed", s.seed))

	color.Cyan("🌱 Starting database seeding (random seed %d)...", s.seed)
	color.Cyan("📋 Insertion order: %s", strings.Join(order, " → "))
	fmt.Println()

	// Where clearing is transactional it joins the run's transaction, so a
	// failed run keeps the existing data.
	inTx := s.config.TransactionalTruncate()
	if seedConfig.Truncate && !inTx {
		if err := s.truncate(ctx, order); err != nil {
			return nil, err
		}
	}

	if err := s.adapter.Begin(ctx); err != nil {
		return nil, err
	}
	color.Cyan("🔒 Transaction started")

	pools := make(Pools, len(order))
	var seedErr error
	if seedConfig.Truncate && inTx {
		seedErr = s.truncate(ctx, order)
	}
	for _, tableName := range order {
		if seedErr != nil {
			break
		}
		quota := quotaFor(seedConfig.Quotas, tableName)

		start := time.Now()
		color.Cyan("  📝 Seeding %s (%d records)...", tableName, quota)
		ids, err := s.phases[tableName](ctx, pools, quota)
		if err != nil {
			seedErr = fmt.Errorf("failed to seed table %s: %w", tableName, err)
			break
		}
		pools[tableName] = ids
		report.Rows[tableName] = quota

		color.Green("  ✅ %s seeded successfully", tableName)
		log.Info("phase finished",
			zap.String("table", tableName),
			zap.Int("rows", quota),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	if seedErr != nil {
		log.Error("seeding aborted", zap.Error(seedErr))
		color.Yellow("🔄 Rolling back transaction due to error...")
		if rbErr := s.adapter.Rollback(context.Background()); rbErr != nil {
			return nil, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, seedErr)
		}
		color.Yellow("✅ Transaction rolled back")
		return nil, seedErr
	}

	if err := s.adapter.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	color.Cyan("🔓 Transaction committed")

	report.Committed = true
	report.Duration = time.Since(report.StartedAt)
	log.Info("seeding completed", zap.Duration("elapsed", report.Duration))

	color.Green("\n✅ Database seeding completed successfully!")
	return report, nil
}

// checkFeasible rejects quotas that could never be met before anything is
// written: a phase whose parent pool stays empty, or a pair phase asking for
// more unique pairs than exist.
func (s *Seeder) checkFeasible(order []string, q config.Quotas) error {
	for _, tableName := range order {
		if quotaFor(q, tableName) == 0 {
			continue
		}
		for _, dep := range s.graph.Table(tableName).Dependencies {
			if quotaFor(q, dep) == 0 {
				return fmt.Errorf("cannot seed %s: %w: %s quota is 0", tableName, sampler.ErrEmptyPool, dep)
			}
		}
	}

	pairs := []struct {
		table     string
		requested int
		available int
	}{
		{TableSubscription, q.Subscriptions, sampler.Capacity(q.Users, q.Users, q.Users, true)},
		{TablePostLike, q.PostLikes, sampler.Capacity(q.Posts, q.Users, 0, false)},
		{TableCommentLike, q.CommentLikes, sampler.Capacity(q.Comments, q.Users, 0, false)},
	}
	for _, p := range pairs {
		if p.requested > p.available {
			return fmt.Errorf("cannot seed %s: %w", p.table,
				&sampler.ExhaustedPoolError{Requested: p.requested, Available: p.available})
		}
	}
	return nil
}

// insert writes one row and returns its generated key when the table has one.
func (s *Seeder) insert(ctx context.Context, table string, row common.Row) (int64, error) {
	return s.adapter.Insert(ctx, table, row, s.graph.Table(table).PrimaryKey)
}

func (s *Seeder) progress(table string, done, quota int) {
	every := s.config.ProgressEvery
	if every > 0 && done%every == 0 && done < quota {
		fmt.Printf("     %s: %d/%d rows\n", table, done, quota)
	}
}

func (s *Seeder) pick(pool []int64) int64 {
	return pool[s.rng.Intn(len(pool))]
}

func (s *Seeder) seedUsers(ctx context.Context, _ Pools, quota int) ([]int64, error) {
	ids := make([]int64, 0, quota)
	for i := 0; i < quota; i++ {
		salt := newSalt()
		row := common.Row{
			"first_name":      s.source.FirstName(),
			"last_name":       s.source.LastName(),
			"hashed_password": HashPassword(s.config.User.Password, []byte(salt)),
			"salt":            salt,
			"email":           fmt.Sprintf("email%d@%s", i, s.config.User.EmailDomain),
			"avatar":          s.config.User.Avatar,
			"date_of_birth":   s.source.DateOfBirth(),
		}
		id, err := s.insert(ctx, TableUser, row)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		s.progress(TableUser, i+1, quota)
	}
	return ids, nil
}

func (s *Seeder) seedPosts(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, quota)
	for i := 0; i < quota; i++ {
		row := common.Row{
			"author_id":   s.pick(users),
			"content":     s.source.Text(),
			"attachments": s.source.Words(5),
		}
		id, err := s.insert(ctx, TablePost, row)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		s.progress(TablePost, i+1, quota)
	}
	return ids, nil
}

func (s *Seeder) seedComments(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}
	posts, err := pools.get(TablePost)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, quota)
	for i := 0; i < quota; i++ {
		row := common.Row{
			"author_id": s.pick(users),
			"post_id":   s.pick(posts),
			"content":   s.source.Text(),
		}
		id, err := s.insert(ctx, TableComment, row)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		s.progress(TableComment, i+1, quota)
	}
	return ids, nil
}

// seedMessages puts no constraint on sender and receiver: the same two users
// may exchange any number of messages and a user may message themselves.
func (s *Seeder) seedMessages(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}

	for i := 0; i < quota; i++ {
		row := common.Row{
			"sender_id":   s.pick(users),
			"receiver_id": s.pick(users),
			"content":     s.source.Text(),
			"attachments": s.source.Words(5),
		}
		if _, err := s.insert(ctx, TablePersonalMessage, row); err != nil {
			return nil, err
		}
		s.progress(TablePersonalMessage, i+1, quota)
	}
	return nil, nil
}

func (s *Seeder) seedSubscriptions(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}
	return nil, s.seedPairs(ctx, TableSubscription, "subscriber_id", "subscribed_to_id", users, users, quota, sampler.ForbidSelf())
}

func (s *Seeder) seedPostLikes(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	posts, err := pools.get(TablePost)
	if err != nil {
		return nil, err
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}
	return nil, s.seedPairs(ctx, TablePostLike, "post_id", "user_id", posts, users, quota)
}

func (s *Seeder) seedCommentLikes(ctx context.Context, pools Pools, quota int) ([]int64, error) {
	if quota == 0 {
		return nil, nil
	}
	comments, err := pools.get(TableComment)
	if err != nil {
		return nil, err
	}
	users, err := pools.get(TableUser)
	if err != nil {
		return nil, err
	}
	return nil, s.seedPairs(ctx, TableCommentLike, "comment_id", "user_id", comments, users, quota)
}

// seedPairs inserts quota unique (left, right) rows. The seen-pairs set lives
// in the sampler and is dropped when the phase returns.
func (s *Seeder) seedPairs(ctx context.Context, table, leftCol, rightCol string, left, right []int64, quota int, opts ...sampler.Option) error {
	opts = append(opts, sampler.WithAttemptFactor(s.config.Sampler.AttemptFactor))
	pairs, err := sampler.New(s.rng, left, right, opts...)
	if err != nil {
		return err
	}
	if err := pairs.Reserve(quota); err != nil {
		return err
	}

	for i := 0; i < quota; i++ {
		pair, err := pairs.Next()
		if err != nil {
			return err
		}
		row := common.Row{
			leftCol:  pair.Left,
			rightCol: pair.Right,
		}
		if _, err := s.insert(ctx, table, row); err != nil {
			return err
		}
		s.progress(table, i+1, quota)
	}
	return nil
}

func (s *Seeder) truncate(ctx context.Context, order []string) error {
	color.Yellow("🗑️  Truncating tables...")

	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	if err := s.adapter.TruncateTables(ctx, reversed); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	color.Green("✅ Tables truncated")
	fmt.Println()
	return nil
}

// Truncate clears every seeded table, dependents first.
func (s *Seeder) Truncate(ctx context.Context) error {
	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return err
	}
	return s.truncate(ctx, order)
}

// RowCounts returns the current row count of every seeded table in insertion
// order.
func (s *Seeder) RowCounts(ctx context.Context) ([]string, map[string]int, error) {
	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.adapter.GetAllTableRowCounts(ctx, order)
	if err != nil {
		return nil, nil, err
	}
	return order, counts, nil
}
