package iolab_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/cardlab/cardlab/internal/iolab"
	"github.com/cardlab/cardlab/internal/iostore"
	"github.com/cardlab/cardlab/internal/iotesting"
	"github.com/cardlab/cardlab/pkg/errcode"
	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLab(t *testing.T) (lab.Lab, *iotesting.Recorder) {
	t.Helper()
	op := iotesting.ConnectSQLite(t)
	rec := &iotesting.Recorder{}
	return iolab.New(iostore.New(op), rec, 4), rec
}

func num(i int) *int       { return &i }
func str(s string) *string { return &s }
func id(i uint) *uint      { return &i }

func hel() schema.Card {
	return schema.Card{
		Name:        "Hel",
		Type:        schema.TypeGod,
		Cost:        4,
		Fi:          num(5),
		Hp:          num(10),
		GodDmg:      num(3),
		CreatureDmg: num(2),
		Pantheon:    str("Norse"),
		Tags:        []string{"Destroy"},
	}
}

func godWithPassive(name, text string) schema.Card {
	c := hel()
	c.Name = name
	c.Passives = []schema.PassiveRef{
		{Group: str("Norse passive"), Name: "Rage", Text: text},
	}
	return c
}

func assertHistory(t *testing.T, vs []schema.VersionEntry[schema.Card], n int) {
	t.Helper()
	require.Len(t, vs, n)
	var current int
	for i, v := range vs {
		assert.Equal(t, i+1, v.Version)
		if v.IsCurrent {
			current++
		}
	}
	assert.Equal(t, 1, current)
	assert.True(t, vs[n-1].IsCurrent)
}

func TestStatTotalAndHistory(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, rec := newLab(t)

	c, err := l.CreateCard(ctx, hel())
	require.NoError(t, err)
	assert.Equal(20, c.StatTotal)
	assert.Equal(1, c.Version)

	edit := hel()
	edit.Hp = num(15)
	c, err = l.UpdateCard(ctx, c.ID, edit)
	require.NoError(t, err)
	assert.Equal(25, c.StatTotal)
	assert.Equal(2, c.Version)

	vs, err := l.CardVersions(ctx, c.ID)
	require.NoError(t, err)
	assertHistory(t, vs, 2)
	assert.Equal(20, vs[0].Snapshot.StatTotal)
	assert.Equal(25, vs[1].Snapshot.StatTotal)

	_, err = l.RestoreCard(ctx, c.ID, 1)
	require.NoError(t, err)
	vs, err = l.CardVersions(ctx, c.ID)
	require.NoError(t, err)
	assertHistory(t, vs, 3)
	assert.Equal(20, vs[2].Snapshot.StatTotal)

	assert.Equal(1, rec.Count("card", lab.ActionCreate))
	assert.Equal(1, rec.Count("card", lab.ActionUpdate))
	assert.Equal(1, rec.Count("card", lab.ActionRestore))
}

func TestRestoreCurrentMintsVersion(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	c, err := l.CreateCard(ctx, hel())
	require.NoError(t, err)
	res, err := l.RestoreCard(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	vs, err := l.CardVersions(ctx, c.ID)
	require.NoError(t, err)
	assertHistory(t, vs, 2)
	assert.Equal(t, vs[0].Checksum, vs[1].Checksum)
}

func TestRestoreNotFound(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	_, err := l.RestoreCard(ctx, 42, 1)
	assert.Equal(t, errcode.NotFoundError, errcode.CodeOf(err))

	c, err := l.CreateCard(ctx, hel())
	require.NoError(t, err)
	_, err = l.RestoreCard(ctx, c.ID, 7)
	assert.Equal(t, errcode.NotFoundError, errcode.CodeOf(err))

	require.NoError(t, l.DeleteCard(ctx, c.ID))
	_, err = l.RestoreCard(ctx, c.ID, 1)
	assert.Equal(t, errcode.NotFoundError, errcode.CodeOf(err))
}

func TestCreateCardLinksPassives(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, rec := newLab(t)

	a, err := l.CreateCard(ctx, godWithPassive("Hel", "Gain 1 fi"))
	require.NoError(t, err)
	require.Len(t, a.Passives, 1)
	require.NotNil(t, a.Passives[0].PassiveID)

	p, err := l.Passive(ctx, *a.Passives[0].PassiveID)
	require.NoError(t, err)
	assert.Equal("Norse passive", p.GroupName)
	assert.Equal("Rage", p.Name)
	assert.Equal("Gain 1 fi", p.Text)
	assert.Equal("Norse", *p.Pantheon)

	// same natural key in other case links to the existing passive and
	// takes its current text
	c := godWithPassive("Odin", "something else")
	c.Passives[0].Group = str("norse PASSIVE")
	c.Passives[0].Name = "rage"
	b, err := l.CreateCard(ctx, c)
	require.NoError(t, err)
	assert.Equal(p.ID, *b.Passives[0].PassiveID)
	assert.Equal("Gain 1 fi", b.Passives[0].Text)
	assert.Equal("Rage", b.Passives[0].Name)

	ps, err := l.Passives(ctx)
	require.NoError(t, err)
	assert.Len(ps, 1)
	assert.Equal(1, rec.Count("passive", lab.ActionCreate))
}

func TestCreateCardLogsReplacedText(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf,
		&slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx := context.Background()
	l, _ := newLab(t)
	_, err := l.CreateCard(ctx, godWithPassive("Hel", "Gain 1 fi"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Card text replaced")

	_, err = l.CreateCard(ctx, godWithPassive("Odin", "Gain 1 fi"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Card text replaced")

	_, err = l.CreateCard(ctx, godWithPassive("Thor", "Gain 5 fi"))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"Card text replaced by shared text"`)
	assert.Contains(t, out, `"typed":"Gain 5 fi"`)
	assert.Contains(t, out, `"stored":"Gain 1 fi"`)
	assert.Contains(t, out, `"kind":"passive"`)
}

func TestCreateCardDanglingID(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	c := godWithPassive("Hel", "Gain 1 fi")
	c.Passives[0].PassiveID = id(99)
	res, err := l.CreateCard(ctx, c)
	require.NoError(t, err)
	require.NotNil(t, res.Passives[0].PassiveID)
	assert.NotEqual(t, uint(99), *res.Passives[0].PassiveID)
}

func TestValidationBeforeWrite(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	tests := []struct {
		msg  string
		card schema.Card
	}{
		{"creature with god stats", schema.Card{
			Name: "Wolf", Type: schema.TypeCreature, GodDmg: num(2),
			CardAbilities: []schema.AbilityRef{{Name: "Swift", Text: "Acts first"}},
		}},
		{"spell with passives", schema.Card{
			Name: "Bolt", Type: schema.TypeSpell,
			Passives: []schema.PassiveRef{{Name: "Rage", Text: "x"}},
		}},
		{"negative cost", schema.Card{Name: "Axe", Type: schema.TypeWeapon, Cost: -1}},
		{"no name", schema.Card{Type: schema.TypeArmor}},
		{"unknown type", schema.Card{Name: "X", Type: "Planet"}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := l.CreateCard(ctx, tt.card)
			assert.Equal(t, errcode.ValidationError, errcode.CodeOf(err))
		})
	}

	cards, err := l.QueryCards(ctx, filter.Card{})
	require.NoError(t, err)
	assert.Empty(t, cards)
	ps, err := l.Passives(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)
	as, err := l.Abilities(ctx)
	require.NoError(t, err)
	assert.Empty(t, as)
}

func TestRestoreRefreshesReferencedText(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	c, err := l.CreateCard(ctx, godWithPassive("Hel", "old text"))
	require.NoError(t, err)
	pid := *c.Passives[0].PassiveID

	// version 2 drops the passive, so the passive update below does not
	// cascade into the card
	edit := hel()
	_, err = l.UpdateCard(ctx, c.ID, edit)
	require.NoError(t, err)

	_, report, err := l.UpdatePassive(ctx, pid, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "new text",
	})
	require.NoError(t, err)
	assert.Empty(report.UpdatedCardIDs)

	res, err := l.RestoreCard(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(3, res.Version)
	require.Len(t, res.Passives, 1)
	assert.Equal("new text", res.Passives[0].Text)
	assert.Equal(pid, *res.Passives[0].PassiveID)

	v1, err := l.CardVersion(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal("old text", v1.Snapshot.Passives[0].Text)
}

func TestRestoreKeepsTextOfDeletedReferent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	c := schema.Card{
		Name: "Wolf", Type: schema.TypeCreature, Hp: num(3), Dmg: num(2),
		CardAbilities: []schema.AbilityRef{{Name: "Pack", Text: "old pack"}},
	}
	created, err := l.CreateCard(ctx, c)
	require.NoError(t, err)
	aid := *created.CardAbilities[0].AbilityID

	c.CardAbilities = nil
	_, err = l.UpdateCard(ctx, created.ID, c)
	require.NoError(t, err)
	require.NoError(t, l.DeleteAbility(ctx, aid))

	res, err := l.RestoreCard(ctx, created.ID, 1)
	require.NoError(t, err)
	require.Len(t, res.CardAbilities, 1)
	assert.Equal("Pack", res.CardAbilities[0].Name)
	assert.Equal("old pack", res.CardAbilities[0].Text)
	assert.Nil(res.CardAbilities[0].AbilityID)

	// restore never recreates a deleted referent
	as, err := l.Abilities(ctx)
	require.NoError(t, err)
	assert.Empty(as)
}

func TestPassiveCascade(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, rec := newLab(t)

	a, err := l.CreateCard(ctx, godWithPassive("Hel", "Gain 1 fi"))
	require.NoError(t, err)
	b, err := l.CreateCard(ctx, godWithPassive("Odin", "Gain 1 fi"))
	require.NoError(t, err)
	other, err := l.CreateCard(ctx, hel())
	require.NoError(t, err)
	pid := *a.Passives[0].PassiveID

	p, report, err := l.UpdatePassive(ctx, pid, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "Gain 2 fi",
	})
	require.NoError(t, err)
	assert.Equal(2, p.Version)
	assert.True(report.OK())
	assert.Equal([]uint{a.ID, b.ID}, report.UpdatedCardIDs)
	assert.Equal(2, rec.Count("card", lab.ActionCascade))

	for _, cid := range []uint{a.ID, b.ID} {
		vs, err := l.CardVersions(ctx, cid)
		require.NoError(t, err)
		assertHistory(t, vs, 2)
		prev, cur := vs[0].Snapshot, vs[1].Snapshot
		assert.Equal("Gain 2 fi", cur.Passives[0].Text)

		prev.Passives, cur.Passives = nil, nil
		prev.Version, cur.Version = 0, 0
		prev.UpdatedAt, cur.UpdatedAt = time.Time{}, time.Time{}
		assert.Equal(prev, cur)
	}

	vs, err := l.CardVersions(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(vs, 1)

	// same text again changes nothing downstream
	_, report, err = l.UpdatePassive(ctx, pid, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "Gain 2 fi",
	})
	require.NoError(t, err)
	assert.Empty(report.UpdatedCardIDs)
	vs, err = l.CardVersions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(vs, 2)
}

func TestPassiveCascadePartialFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)
	rec := &iotesting.Recorder{}
	l := iolab.New(iostore.New(op), rec, 4)

	a, err := l.CreateCard(ctx, godWithPassive("Hel", "Gain 1 fi"))
	require.NoError(t, err)
	b, err := l.CreateCard(ctx, godWithPassive("Odin", "Gain 1 fi"))
	require.NoError(t, err)
	pid := *a.Passives[0].PassiveID

	// a row written outside the lab that no longer validates
	err = op.DB().Exec("UPDATE cards SET type = ? WHERE id = ?", "Bogus", b.ID).Error
	require.NoError(t, err)

	p, report, err := l.UpdatePassive(ctx, pid, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "Gain 9 fi",
	})
	require.NoError(t, err)
	assert.Equal(2, p.Version)
	assert.False(report.OK())
	assert.Equal([]uint{a.ID}, report.UpdatedCardIDs)
	require.Len(t, report.Failures, 1)
	assert.Equal(b.ID, report.Failures[0].CardID)
	assert.Contains(report.Failures[0].Error, "Bogus")

	stored, err := l.Passive(ctx, pid)
	require.NoError(t, err)
	assert.Equal("Gain 9 fi", stored.Text)

	c, err := l.Card(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal("Gain 9 fi", c.Passives[0].Text)

	vs, err := l.CardVersions(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(vs, 1)
	assert.Equal(1, rec.Count("card", lab.ActionCascade))
}

func TestRestorePassiveCascades(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	c, err := l.CreateCard(ctx, godWithPassive("Hel", "v1 text"))
	require.NoError(t, err)
	pid := *c.Passives[0].PassiveID

	_, _, err = l.UpdatePassive(ctx, pid, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "v2 text",
	})
	require.NoError(t, err)

	p, report, err := l.RestorePassive(ctx, pid, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Version)
	assert.Equal(t, "v1 text", p.Text)
	assert.Equal(t, []uint{c.ID}, report.UpdatedCardIDs)

	got, err := l.Card(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1 text", got.Passives[0].Text)
	assert.Equal(t, 3, got.Version)
}

func TestAbilityCascadeManyCards(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	var ids []uint
	for i := range 12 {
		c, err := l.CreateCard(ctx, schema.Card{
			Name: fmt.Sprintf("Wolf %d", i), Type: schema.TypeCreature,
			Hp: num(2), Dmg: num(1),
			CardAbilities: []schema.AbilityRef{{Name: "Pack", Text: "old"}},
		})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	as, err := l.Abilities(ctx)
	require.NoError(t, err)
	require.Len(t, as, 1)

	a, report, err := l.UpdateAbility(ctx, as[0].ID, schema.KeywordAbility{
		Name: "Pack", Text: "new",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Version)
	assert.True(t, report.OK())
	assert.Equal(t, ids, report.UpdatedCardIDs)

	cards, err := l.QueryCards(ctx, filter.Card{})
	require.NoError(t, err)
	for _, c := range cards {
		assert.Equal(t, "new", c.CardAbilities[0].Text)
		assert.Equal(t, 2, c.Version)
	}
}

func TestEnsurePassive(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	p1, created, err := l.EnsurePassive(ctx, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "x",
	})
	require.NoError(t, err)
	assert.True(created)

	p2, created, err := l.EnsurePassive(ctx, schema.Passive{
		GroupName: "Norse passive", Name: "Rage", Text: "y",
	})
	require.NoError(t, err)
	assert.False(created)
	assert.Equal(p1.ID, p2.ID)
	assert.Equal("x", p2.Text)

	_, _, err = l.EnsurePassive(ctx, schema.Passive{GroupName: "Norse passive"})
	assert.Equal(errcode.ValidationError, errcode.CodeOf(err))
}

func TestUpdatePassiveKeyConflict(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	_, _, err := l.EnsurePassive(ctx, schema.Passive{GroupName: "G", Name: "A"})
	require.NoError(t, err)
	b, _, err := l.EnsurePassive(ctx, schema.Passive{GroupName: "G", Name: "B"})
	require.NoError(t, err)

	_, _, err = l.UpdatePassive(ctx, b.ID, schema.Passive{GroupName: "g", Name: "a"})
	assert.Equal(t, errcode.ConflictError, errcode.CodeOf(err))
}

func TestEnsureAbilityConcurrent(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	ids := make(chan uint, 8)
	errs := make(chan error, 8)
	for range 8 {
		go func() {
			a, _, err := l.EnsureAbility(ctx, schema.KeywordAbility{Name: "Swift"})
			if err != nil {
				errs <- err
				return
			}
			ids <- a.ID
		}()
	}
	var first uint
	for range 8 {
		select {
		case err := <-errs:
			t.Fatalf("EnsureAbility: %v", err)
		case v := <-ids:
			if first == 0 {
				first = v
			}
			assert.Equal(t, first, v)
		}
	}
	as, err := l.Abilities(ctx)
	require.NoError(t, err)
	assert.Len(t, as, 1)
}

func TestQueryCards(t *testing.T) {
	ctx := context.Background()
	l, _ := newLab(t)

	mk := func(name, pantheon string, tags ...string) schema.Card {
		return schema.Card{
			Name: name, Type: schema.TypeWeapon, Pantheon: str(pantheon), Tags: tags,
		}
	}
	for _, c := range []schema.Card{
		mk("Gungnir", "Norse", "Destroy"),
		mk("Aegis", "Greek"),
		mk("Trident", "Greek", "Destroy"),
		mk("Ankh", "Egyptian", "destroy"),
	} {
		_, err := l.CreateCard(ctx, c)
		require.NoError(t, err)
	}

	names := func(cards []schema.Card) []string {
		var res []string
		for _, v := range cards {
			res = append(res, v.Name)
		}
		return res
	}

	tests := []struct {
		msg string
		f   filter.Card
		res []string
	}{
		{"empty", filter.Card{}, []string{"Gungnir", "Aegis", "Trident", "Ankh"}},
		{"or", filter.Card{Pantheons: []string{"Greek", "Norse"}, Mode: filter.ModeOr},
			[]string{"Gungnir", "Aegis", "Trident"}},
		{"and", filter.Card{Pantheons: []string{"Greek"}, Tags: []string{"Destroy"}},
			[]string{"Trident"}},
		{"or across dims", filter.Card{
			Pantheons: []string{"Greek"}, Tags: []string{"Destroy"}, Mode: filter.ModeOr,
		}, []string{"Gungnir", "Aegis", "Trident", "Ankh"}},
		{"search", filter.Card{Search: "GUN"}, []string{"Gungnir"}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := l.QueryCards(ctx, tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.res, names(res))
		})
	}
}

func TestTagsRegisteredAndDeleted(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	c, err := l.CreateCard(ctx, hel())
	require.NoError(t, err)
	untagged := hel()
	untagged.Name = "Frigg"
	untagged.Tags = nil
	other, err := l.CreateCard(ctx, untagged)
	require.NoError(t, err)

	tags, err := l.Categories(ctx, schema.CategoryTag)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal("Destroy", tags[0].Name)

	report, err := l.DeleteCategory(ctx, schema.CategoryTag, tags[0].ID)
	require.NoError(t, err)
	assert.Equal([]uint{c.ID}, report.UpdatedCardIDs)

	got, err := l.Card(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(got.Tags)
	assert.Equal(2, got.Version)

	got, err = l.Card(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(1, got.Version)

	tags, err = l.Categories(ctx, schema.CategoryTag)
	require.NoError(t, err)
	assert.Empty(tags)
}

func TestRenamePantheon(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	cat, created, err := l.EnsureCategory(ctx, schema.Category{
		Kind: schema.CategoryPantheon, Name: "Norse",
	})
	require.NoError(t, err)
	assert.True(created)
	_, created, err = l.EnsureCategory(ctx, schema.Category{
		Kind: schema.CategoryPantheon, Name: "NORSE",
	})
	require.NoError(t, err)
	assert.False(created)

	c, err := l.CreateCard(ctx, godWithPassive("Hel", "x"))
	require.NoError(t, err)
	loc, err := l.CreateLocation(ctx, schema.Location{Name: "Asgard", Pantheon: str("norse")})
	require.NoError(t, err)

	res, report, err := l.UpdateCategory(ctx, schema.Category{
		ID: cat.ID, Kind: schema.CategoryPantheon, Name: "Nordic",
	})
	require.NoError(t, err)
	assert.Equal("Nordic", res.Name)
	assert.Equal([]uint{c.ID}, report.UpdatedCardIDs)

	got, err := l.Card(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal("Nordic", *got.Pantheon)

	p, err := l.Passive(ctx, *c.Passives[0].PassiveID)
	require.NoError(t, err)
	assert.Equal("Nordic", *p.Pantheon)
	assert.Equal(2, p.Version)

	gotLoc, err := l.Location(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal("Nordic", *gotLoc.Pantheon)
}

func TestUnknownCategory(t *testing.T) {
	l, _ := newLab(t)
	_, err := l.Categories(context.Background(), "planet")
	assert.Equal(t, errcode.BadRequestError, errcode.CodeOf(err))
}

func TestLocations(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	l, _ := newLab(t)

	for _, v := range []schema.Location{
		{Name: "Asgard", Pantheon: str("Norse"), Archetype: str("Aggro")},
		{Name: "Olympus", Pantheon: str("Greek")},
		{Name: "Hades", Pantheon: str("greek"), Archetype: str("control")},
	} {
		_, err := l.CreateLocation(ctx, v)
		require.NoError(t, err)
	}

	sum, err := l.LocationSummary(ctx)
	require.NoError(t, err)
	assert.Equal([]string{"Greek", "Norse"}, sum.Pantheons)
	assert.Equal([]string{"Aggro", "control"}, sum.Archetypes)
	assert.Equal(3, sum.Total)

	res, err := l.QueryLocations(ctx, filter.Location{Pantheons: []string{"GREEK"}})
	require.NoError(t, err)
	assert.Len(res, 2)

	_, err = l.CreateLocation(ctx, schema.Location{})
	assert.Equal(errcode.ValidationError, errcode.CodeOf(err))

	upd, err := l.UpdateLocation(ctx, res[0].ID, schema.Location{Name: "Mount Olympus"})
	require.NoError(t, err)
	assert.Equal("Mount Olympus", upd.Name)
	assert.Nil(upd.Pantheon)

	require.NoError(t, l.DeleteLocation(ctx, res[0].ID))
	err = l.DeleteLocation(ctx, res[0].ID)
	assert.Equal(errcode.NotFoundError, errcode.CodeOf(err))
}
