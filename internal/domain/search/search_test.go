package search

import (
	"fmt"
	"testing"

	"github.com/deskfolio/deskos/internal/domain/content"
	"github.com/deskfolio/deskos/internal/domain/registry"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex() *Index {
	return NewIndex(registry.NewDefault(), content.Default())
}

func TestEmptyQueries(t *testing.T) {
	x := newIndex()
	for _, q := range []string{"", "   ", "\t\n"} {
		got := x.Search(q)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, OutcomeEmpty, Classify(q, got))
	}
}

func TestNoMatch(t *testing.T) {
	x := newIndex()
	got := x.Search("xyz-no-match")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	outcome := Classify("xyz-no-match", got)
	assert.Equal(t, OutcomeNoMatch, outcome)
	assert.Equal(t, `No results found for "xyz-no-match"`, Message("xyz-no-match", outcome))
	assert.Equal(t, EmptyMessage, Message("", OutcomeEmpty))
	assert.NotEqual(t, Message("", OutcomeEmpty), Message("xyz-no-match", outcome))
}

func TestAppMatchFields(t *testing.T) {
	x := newIndex()

	// Name
	got := x.Search("CALCULATOR")
	require.NotEmpty(t, got)
	assert.Equal(t, types.SearchResult{
		Type:        types.ResultApp,
		Title:       "Calculator",
		Description: "Perform basic calculations",
		Icon:        "🧮",
		Action:      types.Action{Kind: types.ActionOpenApp, AppID: "calculator"},
	}, got[0])

	// Keyword
	got = x.Search("stopwatch")
	require.Len(t, got, 1)
	assert.Equal(t, "clock", got[0].Action.AppID)

	// Description
	got = x.Search("customize")
	require.Len(t, got, 1)
	assert.Equal(t, "settings", got[0].Action.AppID)
}

func TestCategoryOrder(t *testing.T) {
	x := newIndex()

	// "react" hits no app, no project title, the React skill
	got := x.Search("react")
	require.NotEmpty(t, got)
	assert.Equal(t, types.ResultSkill, got[len(got)-1].Type)

	// "c++" hits projects only
	got = x.Search("c++")
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.Equal(t, types.ResultProject, r.Type)
		assert.Equal(t, ProjectIcon, r.Icon)
		assert.Equal(t, ProjectsAppID, r.Action.AppID)
	}

	// "sql" hits projects before skills
	got = x.Search("sql")
	var kinds []types.ResultType
	for _, r := range got {
		kinds = append(kinds, r.Type)
	}
	assert.Equal(t, []types.ResultType{types.ResultProject, types.ResultSkill, types.ResultSkill}, kinds)
	assert.Equal(t, "SQL", got[1].Title)
	assert.Equal(t, "MySQL", got[2].Title)
	assert.Equal(t, SkillDescription, got[1].Description)
	assert.Equal(t, SkillIcon, got[1].Icon)
	assert.Equal(t, SkillsAppID, got[1].Action.AppID)
}

func TestLimit(t *testing.T) {
	skills := make([]types.Skill, 25)
	for i := range skills {
		skills[i] = types.Skill{Label: fmt.Sprintf("Skill %d", i)}
	}
	x := NewIndex(registry.NewDefault(), &content.Catalog{Skills: skills})

	got := x.Search("skill")
	require.Len(t, got, Limit)
	assert.Equal(t, types.ResultApp, got[0].Type, "Skills app comes first")
	assert.Equal(t, "Skill 0", got[1].Title)
	assert.Equal(t, "Skill 8", got[9].Title)
}

func TestGameKeywordHitsEveryGame(t *testing.T) {
	got := newIndex().Search("game")
	var ids []string
	for _, r := range got {
		ids = append(ids, r.Action.AppID)
	}
	assert.Equal(t, []string{"tictactoe", "rps", "snake", "tetris"}, ids)
}

func TestNilSources(t *testing.T) {
	x := NewIndex(nil, nil)
	assert.Empty(t, x.Search("anything"))
}
