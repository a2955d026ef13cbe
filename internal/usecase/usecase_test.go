package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"applytrack/internal/domain/skill"
	"applytrack/internal/repository"
	"applytrack/internal/testutil"
	ucuser "applytrack/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type brokenCache struct {
	*memCache
	err error
}

func (c brokenCache) Delete(context.Context, ...string) error { return c.err }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func shortRefill(t *testing.T) {
	t.Helper()
	prev := staleRefill
	staleRefill = 20 * time.Millisecond
	t.Cleanup(func() { staleRefill = prev })
}

type recorder struct {
	mu     sync.Mutex
	events []ChangeEvent
	users  []uuid.UUID
}

func (r *recorder) Notify(userID uuid.UUID, ev ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.users = append(r.users, userID)
}

func (r *recorder) last(t *testing.T) ChangeEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

type failingSkills struct {
	repository.SkillRepository
	err error
}

func (f failingSkills) ListByUser(context.Context, uuid.UUID) ([]skill.Skill, error) {
	return nil, f.err
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{repository.ErrSkillNotFound, ErrSkillNotFound},
		{repository.ErrJobTagNotFound, ErrJobTagNotFound},
		{repository.ErrExperienceNotFound, ErrExperienceNotFound},
		{repository.ErrDemonstrationNotFound, ErrDemonstrationNotFound},
		{repository.ErrJobNotFound, ErrJobNotFound},
		{repository.ErrDuplicateDemonstration, ErrDuplicateDemonstration},
		{repository.ErrEmptyDemonstration, ErrInvalidInput},
		{repository.ErrBlankRequirement, ErrInvalidInput},
		{errors.New("connection reset"), ErrInternal},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, translate(tc.in), tc.want, tc.in.Error())
	}
	assert.NoError(t, translate(nil))

	cause := errors.New("connection reset")
	assert.ErrorIs(t, translate(cause), cause)
}

func TestSkillUsecase_CacheAndNotify(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	cache := newMemCache()
	rec := &recorder{}
	uc := NewSkillUsecase(repository.NewGormSkillRepository(db), cache, rec)

	_, err := uc.AddSkill(ctx, alice, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := uc.AddSkill(ctx, alice, "  SQL ")
	require.NoError(t, err)
	assert.Equal(t, "SQL", s.Title)
	ev := rec.last(t)
	assert.Equal(t, "skill_updated", ev.Type)
	assert.Equal(t, ActionCreated, ev.Action)
	assert.Equal(t, s.ID, ev.ID)

	items, err := uc.ListSkills(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, cache.has(SkillsListKey(alice)))

	_, err = uc.RenameSkill(ctx, alice, s.ID, "PostgreSQL")
	require.NoError(t, err)
	assert.False(t, cache.has(SkillsListKey(alice)))

	items, err = uc.ListSkills(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "PostgreSQL", items[0].Title)

	_, err = uc.DeleteSkill(ctx, alice, s.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionDeleted, rec.last(t).Action)

	_, err = uc.DeleteSkill(ctx, alice, s.ID)
	assert.ErrorIs(t, err, ErrSkillNotFound)
	_, err = uc.SkillUsage(ctx, alice, s.ID)
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSkillUsecase_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	alice := uuid.New()
	cache := newMemCache()
	require.NoError(t, cache.SetJSON(ctx, SkillsListKey(alice), []skill.Skill{{ID: uuid.New(), Title: "cached"}}, 0))

	uc := NewSkillUsecase(failingSkills{err: errors.New("db down")}, cache, nil)
	items, err := uc.ListSkills(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "cached", items[0].Title)

	_, err = uc.ListSkills(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestJobTagUsecase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	cache := newMemCache()
	uc := NewJobTagUsecase(repository.NewGormJobTagRepository(db), cache, nil)

	tag, err := uc.AddJobTag(ctx, alice, "remote")
	require.NoError(t, err)

	_, err = uc.ListJobTags(ctx, alice)
	require.NoError(t, err)
	assert.True(t, cache.has(JobTagsListKey(alice)))

	_, err = uc.RenameJobTag(ctx, bob, tag.ID, "mine")
	assert.ErrorIs(t, err, ErrJobTagNotFound)
	_, err = uc.RenameJobTag(ctx, alice, tag.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, uc.DeleteJobTag(ctx, alice, tag.ID))
	assert.False(t, cache.has(JobTagsListKey(alice)))
	assert.ErrorIs(t, uc.DeleteJobTag(ctx, alice, tag.ID), ErrJobTagNotFound)
}

func TestExperienceUsecase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	rec := &recorder{}
	skills := NewSkillUsecase(repository.NewGormSkillRepository(db), nil, nil)
	uc := NewExperienceUsecase(repository.NewGormExperienceRepository(db), rec)

	sql, err := skills.AddSkill(ctx, alice, "SQL")
	require.NoError(t, err)
	goSkill, err := skills.AddSkill(ctx, alice, "Go")
	require.NoError(t, err)

	_, err = uc.CreateExperience(ctx, alice, CreateExperienceInput{Title: "x", Description: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	exp, err := uc.CreateExperience(ctx, alice, CreateExperienceInput{
		Title:       "DB Migration",
		Description: "Moved everything to Postgres",
		Demonstrations: []DemonstrationInput{
			{SkillID: &sql.ID, Explanation: "Wrote migration scripts"},
			{SkillID: &goSkill.ID, Explanation: "Service code"},
		},
	})
	require.NoError(t, err)
	require.Len(t, exp.SkillDemonstrations, 2)
	assert.Equal(t, "experience_updated", rec.last(t).Type)

	var sqlDemo uuid.UUID
	for _, d := range exp.SkillDemonstrations {
		if *d.SkillID == sql.ID {
			sqlDemo = d.ID
		}
	}

	_, err = uc.ReassignDemonstration(ctx, alice, sqlDemo, &goSkill.ID)
	assert.ErrorIs(t, err, ErrDuplicateDemonstration)

	_, err = uc.ReassignDemonstration(ctx, alice, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrDemonstrationNotFound)

	blank := " "
	_, err = uc.UpdateExperience(ctx, alice, exp.ID, UpdateExperienceInput{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidInput)

	title := "Postgres migration"
	updated, err := uc.UpdateExperience(ctx, alice, exp.ID, UpdateExperienceInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Len(t, updated.SkillDemonstrations, 2)

	_, err = uc.AddDemonstration(ctx, alice, exp.ID, DemonstrationInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, uc.RemoveDemonstration(ctx, alice, exp.ID, goSkill.ID))
	require.NoError(t, uc.DeleteDemonstration(ctx, alice, sqlDemo))
	ev := rec.last(t)
	assert.Equal(t, "demonstration", ev.Entity)
	assert.Equal(t, sqlDemo, ev.ID)

	require.NoError(t, uc.DeleteExperience(ctx, alice, exp.ID))
	_, err = uc.GetExperience(ctx, alice, exp.ID)
	assert.ErrorIs(t, err, ErrExperienceNotFound)
}

func TestJobUsecase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	uc := NewJobUsecase(repository.NewGormJobRepository(db), nil)

	_, err := uc.CreateJob(ctx, alice, CreateJobInput{Title: "Backend"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.CreateJob(ctx, alice, CreateJobInput{
		Title: "Backend", Company: "Acme",
		Requirements: []RequirementInput{{Description: " "}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	j, err := uc.CreateJob(ctx, alice, CreateJobInput{
		Title: "Backend", Company: "Acme",
		Requirements: []RequirementInput{{Description: "Know SQL"}, {Description: "Ship often"}},
	})
	require.NoError(t, err)
	require.Len(t, j.Requirements, 2)

	_, err = uc.GetJob(ctx, bob, j.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	updated, err := uc.UpdateJob(ctx, alice, j.ID, UpdateJobInput{})
	require.NoError(t, err)
	assert.Empty(t, updated.Requirements)
	assert.Equal(t, "Acme", updated.Company)

	require.NoError(t, uc.DeleteJob(ctx, alice, j.ID))
	assert.ErrorIs(t, uc.DeleteJob(ctx, alice, j.ID), ErrJobNotFound)
}

func TestUserUsecase_DeleteMeDropsCachedLists(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	cache := newMemCache()
	require.NoError(t, cache.SetJSON(ctx, SkillsListKey(alice), []string{}, 0))
	require.NoError(t, cache.SetJSON(ctx, JobTagsListKey(alice), []string{}, 0))

	uc := NewUserUsecase(repository.NewGormUserRepository(db), cache, nil)

	me, err := uc.GetMe(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
	assert.Empty(t, me.PasswordHash)

	require.NoError(t, uc.DeleteMe(ctx, alice))
	assert.False(t, cache.has(SkillsListKey(alice)))
	assert.False(t, cache.has(JobTagsListKey(alice)))

	_, err = uc.GetMe(ctx, alice)
	assert.ErrorIs(t, err, ucuser.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteMe(ctx, alice), ucuser.ErrNotFound)
}

func TestSkillUsecase_LogsFailedInvalidation(t *testing.T) {
	shortRefill(t)
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")

	var logs syncBuffer
	cache := brokenCache{memCache: newMemCache(), err: errors.New("redis gone")}
	uc := NewSkillUsecase(repository.NewGormSkillRepository(db), cache, nil).WithLogger(zerolog.New(&logs))

	_, err := uc.AddSkill(ctx, alice, "Go")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "list cache invalidation failed")
	assert.Contains(t, logs.String(), "redis gone")
	assert.Contains(t, logs.String(), SkillsListKey(alice))
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(logs.String()), []byte("delayed list cache invalidation failed"))
	}, time.Second, 5*time.Millisecond)
}

func TestListInvalidation_DropsStaleRefill(t *testing.T) {
	shortRefill(t)
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.NewUser(t, db, "alice")
	cache := newMemCache()

	skills := NewSkillUsecase(repository.NewGormSkillRepository(db), cache, nil)
	tags := NewJobTagUsecase(repository.NewGormJobTagRepository(db), cache, nil)

	_, err := skills.AddSkill(ctx, alice, "Go")
	require.NoError(t, err)
	_, err = tags.AddJobTag(ctx, alice, "remote")
	require.NoError(t, err)

	// a read that missed before the write committed stores the old list late
	require.NoError(t, cache.SetJSON(ctx, SkillsListKey(alice), []skill.Skill{}, 0))
	require.NoError(t, cache.SetJSON(ctx, JobTagsListKey(alice), []string{}, 0))

	require.Eventually(t, func() bool {
		return !cache.has(SkillsListKey(alice)) && !cache.has(JobTagsListKey(alice))
	}, time.Second, 5*time.Millisecond)

	items, err := skills.ListSkills(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Go", items[0].Title)
}

func TestListInvalidation_SkipsWithoutCache(t *testing.T) {
	var logs syncBuffer
	invalidateLists(context.Background(), cacheOrNoop(nil), zerolog.New(&logs), "lists:skills:x")
	assert.Empty(t, logs.String())
}
