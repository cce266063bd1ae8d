package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	body := `[
		{"name":"Voyager Zero","issuer":"Skyline Bank","annual_fee":0,"reward_type":"Travel Points",
		 "eligibility":"Minimum income 50k/month","perks":["Complimentary airport lounge access"]},
		{"name":"Grocer Cash","issuer":"Harbor Bank","annual_fee":499,"reward_type":"Cashback",
		 "reward_rate":"5% on groceries","perks":["Grocery cashback"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExtractCmd(t *testing.T) {
	out, err := runCmd(t, "", "extract", "I", "spend", "on", "petrol", "and", "want", "cashback")
	require.NoError(t, err)

	var payload struct {
		Patch    domain.ProfilePatch `json:"patch"`
		Complete bool                `json:"complete"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, domain.NewSet(domain.SpendingFuel), payload.Patch.Spending)
	assert.Equal(t, domain.NewSet(domain.BenefitCashback), payload.Patch.Benefits)
	assert.False(t, payload.Complete)
}

func TestMergeCmd(t *testing.T) {
	out, err := runCmd(t, "", "merge",
		"--profile", `{"income":"20k-50k","spending":["groceries"]}`,
		"--patch", `{"spending":["fuel","groceries"],"feePreference":"free"}`)
	require.NoError(t, err)

	var merged domain.UserProfile
	require.NoError(t, json.Unmarshal([]byte(out), &merged))
	assert.Equal(t, domain.Income20KTo50K, merged.Income)
	assert.Equal(t, domain.NewSet(domain.SpendingGroceries, domain.SpendingFuel), merged.Spending)
	assert.Equal(t, domain.FeeFree, merged.FeePreference)
}

func TestRankAndScoreCmd(t *testing.T) {
	path := writeCatalogFile(t)
	profile := `{"income":"1L+","spending":["travel"],"benefits":["lounge access"],"feePreference":"free"}`

	out, err := runCmd(t, "", "rank", "--catalog", path, "--profile", profile, "--limit", "1")
	require.NoError(t, err)
	var ranked []domain.ScoredCard
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, "voyager-zero", ranked[0].Slug)

	out, err = runCmd(t, "", "score", "grocer-cash", "--catalog", path, "--profile", profile)
	require.NoError(t, err)
	var scored domain.ScoredCard
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	assert.Equal(t, "Grocer Cash", scored.Name)
	assert.NotEmpty(t, scored.Reasons)

	_, err = runCmd(t, "", "score", "missing", "--catalog", path)
	assert.ErrorContains(t, err, "not found")
}

func TestFormatCmd(t *testing.T) {
	out, err := runCmd(t, "Sure thing. Tell me your income.", "format", "--last", "what should I look for in a cashback card?")
	require.NoError(t, err)
	assert.Equal(t, "Sure thing.\n\nTell me your income.\n", out)
}
