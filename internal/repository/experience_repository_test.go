package repository_test

import (
	"context"
	"testing"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/repository"
	"applytrack/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperienceRepository_CreateSkipsEmptyRows(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	s := f.skill(t, alice, "SQL")

	e := f.experience(t, alice, "DB Migration",
		demo(&s.ID, "Wrote migration scripts"),
		demo(nil, "  "),
		demo(nil, "Kept from an old skill"),
	)

	require.Len(t, e.SkillDemonstrations, 2)
	for _, d := range e.SkillDemonstrations {
		if d.SkillID != nil {
			require.NotNil(t, d.Skill)
			assert.Equal(t, "SQL", d.Skill.Title)
		}
	}
}

func TestExperienceRepository_CreateRejectsForeignSkill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	bob := testutil.NewUser(t, f.db, "bob")
	foreign := f.skill(t, bob, "Rust")

	_, err := f.exps.Create(ctx, experience.Experience{Title: "x", Description: "y", UserID: alice},
		[]experience.SkillDemonstration{demo(&foreign.ID, "stolen")})
	assert.ErrorIs(t, err, repository.ErrSkillNotFound)

	items, err := f.exps.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExperienceRepository_ZeroSkillIDIsUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	s := f.skill(t, alice, "SQL")

	_, err := f.exps.Create(ctx, experience.Experience{Title: "x", Description: "y", UserID: alice},
		[]experience.SkillDemonstration{demo(ptr(uuid.Nil), "")})
	assert.ErrorIs(t, err, repository.ErrSkillNotFound)

	exp := f.experience(t, alice, "Billing", demo(&s.ID, "schema work"))
	zero := demo(ptr(uuid.Nil), "")
	zero.ExperienceID = exp.ID
	_, err = f.exps.AddDemonstration(ctx, alice, zero)
	assert.ErrorIs(t, err, repository.ErrSkillNotFound)

	_, err = f.exps.ReassignDemonstration(ctx, alice, exp.SkillDemonstrations[0].ID, ptr(uuid.Nil))
	assert.ErrorIs(t, err, repository.ErrSkillNotFound)

	err = f.exps.Update(ctx, alice, exp.ID, repository.ExperienceChanges{},
		&[]experience.SkillDemonstration{demo(ptr(uuid.Nil), "kept?")})
	assert.ErrorIs(t, err, repository.ErrSkillNotFound)

	got, err := f.exps.GetByID(ctx, alice, exp.ID)
	require.NoError(t, err)
	require.Len(t, got.SkillDemonstrations, 1)
	require.NotNil(t, got.SkillDemonstrations[0].SkillID)
	assert.Equal(t, s.ID, *got.SkillDemonstrations[0].SkillID)

	var stored int64
	require.NoError(t, f.db.Model(&experience.SkillDemonstration{}).Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}

func TestExperienceRepository_CreateRejectsRepeatedSkill(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	s := f.skill(t, alice, "SQL")

	_, err := f.exps.Create(context.Background(), experience.Experience{Title: "x", Description: "y", UserID: alice},
		[]experience.SkillDemonstration{demo(&s.ID, "one"), demo(&s.ID, "two")})
	assert.ErrorIs(t, err, repository.ErrDuplicateDemonstration)
}

func TestExperienceRepository_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	sql := f.skill(t, alice, "SQL")
	goSkill := f.skill(t, alice, "Go")
	e := f.experience(t, alice, "DB Migration", demo(&sql.ID, "Wrote migration scripts"))

	t.Run("nil demonstrations keep the set", func(t *testing.T) {
		err := f.exps.Update(ctx, alice, e.ID, repository.ExperienceChanges{Title: ptr("Data migration"), Location: ptr("Remote")}, nil)
		require.NoError(t, err)

		got, err := f.exps.GetByID(ctx, alice, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Data migration", got.Title)
		assert.Equal(t, "DB Migration description", got.Description)
		require.NotNil(t, got.Location)
		assert.Equal(t, "Remote", *got.Location)
		assert.Len(t, got.SkillDemonstrations, 1)
	})

	t.Run("given demonstrations replace the set", func(t *testing.T) {
		demos := []experience.SkillDemonstration{demo(&goSkill.ID, "Rewrote the importer")}
		require.NoError(t, f.exps.Update(ctx, alice, e.ID, repository.ExperienceChanges{}, &demos))

		got, err := f.exps.GetByID(ctx, alice, e.ID)
		require.NoError(t, err)
		require.Len(t, got.SkillDemonstrations, 1)
		assert.Equal(t, goSkill.ID, *got.SkillDemonstrations[0].SkillID)
	})

	t.Run("empty demonstrations clear the set", func(t *testing.T) {
		demos := []experience.SkillDemonstration{}
		require.NoError(t, f.exps.Update(ctx, alice, e.ID, repository.ExperienceChanges{}, &demos))

		got, err := f.exps.GetByID(ctx, alice, e.ID)
		require.NoError(t, err)
		assert.Empty(t, got.SkillDemonstrations)
	})

	t.Run("foreign experience", func(t *testing.T) {
		bob := testutil.NewUser(t, f.db, "bob")
		err := f.exps.Update(ctx, bob, e.ID, repository.ExperienceChanges{Title: ptr("mine")}, nil)
		assert.ErrorIs(t, err, repository.ErrExperienceNotFound)
	})
}

func TestExperienceRepository_DeleteKeepsRequirement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	s := f.skill(t, alice, "SQL")
	e := f.experience(t, alice, "DB Migration", demo(&s.ID, "Wrote migration scripts"))
	kept := f.experience(t, alice, "Reporting")

	j, err := f.jobs.Create(ctx, job.Job{Title: "Backend", Company: "Acme", UserID: alice}, nil, []repository.RequirementDraft{{
		Description: "Know SQL",
		Matches: []repository.MatchDraft{
			{ExperienceID: e.ID, Explanation: "migrations"},
			{ExperienceID: kept.ID, Explanation: "reports"},
		},
	}})
	require.NoError(t, err)

	require.NoError(t, f.exps.Delete(ctx, alice, e.ID))
	assert.ErrorIs(t, f.exps.Delete(ctx, alice, e.ID), repository.ErrExperienceNotFound)

	got, err := f.jobs.GetByID(ctx, alice, j.ID)
	require.NoError(t, err)
	require.Len(t, got.Requirements, 1)
	require.Len(t, got.Requirements[0].Matches, 1)
	assert.Equal(t, kept.ID, got.Requirements[0].Matches[0].ExperienceID)

	var demos int64
	require.NoError(t, f.db.Model(&experience.SkillDemonstration{}).Where("experience_id = ?", e.ID).Count(&demos).Error)
	assert.Zero(t, demos)
}

func TestExperienceRepository_Demonstrations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	bob := testutil.NewUser(t, f.db, "bob")
	s := f.skill(t, alice, "SQL")
	e := f.experience(t, alice, "DB Migration")

	d, err := f.exps.AddDemonstration(ctx, alice, experience.SkillDemonstration{ExperienceID: e.ID, SkillID: &s.ID, Explanation: "scripts"})
	require.NoError(t, err)
	require.NotNil(t, d.Skill)

	_, err = f.exps.AddDemonstration(ctx, alice, experience.SkillDemonstration{ExperienceID: e.ID, SkillID: &s.ID, Explanation: "again"})
	assert.ErrorIs(t, err, repository.ErrDuplicateDemonstration)

	_, err = f.exps.AddDemonstration(ctx, alice, experience.SkillDemonstration{ExperienceID: e.ID})
	assert.ErrorIs(t, err, repository.ErrEmptyDemonstration)

	_, err = f.exps.AddDemonstration(ctx, bob, experience.SkillDemonstration{ExperienceID: e.ID, Explanation: "mine"})
	assert.ErrorIs(t, err, repository.ErrExperienceNotFound)

	require.NoError(t, f.exps.UpdateDemonstrationExplanation(ctx, alice, e.ID, s.ID, "Wrote migration scripts"))
	got, err := f.exps.GetByID(ctx, alice, e.ID)
	require.NoError(t, err)
	require.Len(t, got.SkillDemonstrations, 1)
	assert.Equal(t, "Wrote migration scripts", got.SkillDemonstrations[0].Explanation)

	other := f.skill(t, alice, "Go")
	assert.ErrorIs(t, f.exps.UpdateDemonstrationExplanation(ctx, alice, e.ID, other.ID, "x"), repository.ErrDemonstrationNotFound)
	assert.ErrorIs(t, f.exps.UpdateDemonstrationExplanation(ctx, bob, e.ID, s.ID, "x"), repository.ErrExperienceNotFound)

	assert.ErrorIs(t, f.exps.DeleteDemonstrationBySkill(ctx, bob, e.ID, s.ID), repository.ErrExperienceNotFound)
	require.NoError(t, f.exps.DeleteDemonstrationBySkill(ctx, alice, e.ID, s.ID))
	assert.ErrorIs(t, f.exps.DeleteDemonstrationBySkill(ctx, alice, e.ID, s.ID), repository.ErrDemonstrationNotFound)
}

func TestExperienceRepository_Reassign(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	bob := testutil.NewUser(t, f.db, "bob")
	sql := f.skill(t, alice, "SQL")
	goSkill := f.skill(t, alice, "Go")
	e := f.experience(t, alice, "DB Migration",
		demo(&sql.ID, "Wrote migration scripts"),
		demo(&goSkill.ID, "Service code"),
	)

	byskill := func(t *testing.T, id uuid.UUID) experience.SkillDemonstration {
		t.Helper()
		got, err := f.exps.GetByID(ctx, alice, e.ID)
		require.NoError(t, err)
		for _, d := range got.SkillDemonstrations {
			if d.SkillID != nil && *d.SkillID == id {
				return d
			}
		}
		t.Fatalf("no demonstration for skill %s", id)
		return experience.SkillDemonstration{}
	}
	sqlDemo := byskill(t, sql.ID)

	t.Run("duplicate pair is rejected and nothing changes", func(t *testing.T) {
		_, err := f.exps.ReassignDemonstration(ctx, alice, sqlDemo.ID, &goSkill.ID)
		assert.ErrorIs(t, err, repository.ErrDuplicateDemonstration)

		assert.Equal(t, "Wrote migration scripts", byskill(t, sql.ID).Explanation)
		assert.Equal(t, "Service code", byskill(t, goSkill.ID).Explanation)
	})

	t.Run("same skill is a no-op", func(t *testing.T) {
		d, err := f.exps.ReassignDemonstration(ctx, alice, sqlDemo.ID, &sql.ID)
		require.NoError(t, err)
		assert.Equal(t, sql.ID, *d.SkillID)
	})

	t.Run("foreign caller sees not found", func(t *testing.T) {
		_, err := f.exps.ReassignDemonstration(ctx, bob, sqlDemo.ID, nil)
		assert.ErrorIs(t, err, repository.ErrDemonstrationNotFound)
		assert.ErrorIs(t, f.exps.DeleteDemonstration(ctx, bob, sqlDemo.ID), repository.ErrDemonstrationNotFound)
	})

	t.Run("foreign target skill", func(t *testing.T) {
		rust := f.skill(t, bob, "Rust")
		_, err := f.exps.ReassignDemonstration(ctx, alice, sqlDemo.ID, &rust.ID)
		assert.ErrorIs(t, err, repository.ErrSkillNotFound)
	})

	t.Run("orphan and reattach", func(t *testing.T) {
		d, err := f.exps.ReassignDemonstration(ctx, alice, sqlDemo.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, d.SkillID)
		assert.Nil(t, d.Skill)

		k8s := f.skill(t, alice, "Kubernetes")
		d, err = f.exps.ReassignDemonstration(ctx, alice, sqlDemo.ID, &k8s.ID)
		require.NoError(t, err)
		require.NotNil(t, d.Skill)
		assert.Equal(t, "Kubernetes", d.Skill.Title)
		assert.Equal(t, "Wrote migration scripts", d.Explanation)
	})

	t.Run("delete by id", func(t *testing.T) {
		require.NoError(t, f.exps.DeleteDemonstration(ctx, alice, sqlDemo.ID))
		assert.ErrorIs(t, f.exps.DeleteDemonstration(ctx, alice, sqlDemo.ID), repository.ErrDemonstrationNotFound)
	})
}

func TestExperienceRepository_OrphaningBlankDemonstration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := testutil.NewUser(t, f.db, "alice")
	s := f.skill(t, alice, "SQL")
	e := f.experience(t, alice, "DB Migration", demo(&s.ID, ""))
	require.Len(t, e.SkillDemonstrations, 1)

	_, err := f.exps.ReassignDemonstration(ctx, alice, e.SkillDemonstrations[0].ID, nil)
	assert.ErrorIs(t, err, repository.ErrEmptyDemonstration)
}
