package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeJDDropsDuplicateRequirements(t *testing.T) {
	jd := NormalizeJD(ParsedJD{
		RequiredHardSkills: []HardSkill{{Name: "Python"}, {Name: " python "}, {Name: ""}, {Name: "Go"}},
		RequiredSoftSkills: []string{"Communication", "communication", "  "},
		Responsibilities:   []string{"Build APIs", "BUILD APIS"},
	})

	require.Len(t, jd.RequiredHardSkills, 2)
	assert.Equal(t, "Python", jd.RequiredHardSkills[0].Name)
	assert.Equal(t, "Go", jd.RequiredHardSkills[1].Name)
	assert.Equal(t, []string{"Communication"}, jd.RequiredSoftSkills)
	assert.Equal(t, []string{"Build APIs"}, jd.Responsibilities)
}

func TestNormalizeJDDuplicateSkillCountsOnce(t *testing.T) {
	jd := NormalizeJD(ParsedJD{RequiredHardSkills: []HardSkill{{Name: "Python"}, {Name: "python"}}})

	p := newFakeProvider(2, map[string][]float32{"Python": {1, 0}})
	res, err := MatchSkills(context.Background(), p, []string{"Python"}, jd.HardSkillNames())
	require.NoError(t, err)

	assert.Equal(t, 1, len(res.Matched)+len(res.Missing))
	assert.Equal(t, 100.0, res.Score)
}
