package patients

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(m ValidationErrors) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestPatient_DecodesStoredLayout(t *testing.T) {
	raw := `{
		"id": "1700000000000",
		"patientName": "Milo",
		"species": "Perro",
		"breed": "Mestizo",
		"age": 7,
		"vaccinesUpToDate": "Si",
		"ownerName": "Ana",
		"ownerPhone": "11 5555-0000",
		"notes": "",
		"createdAt": "2024-03-01T10:20:30.123Z"
	}`

	var p Patient
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, Age("7"), p.Age)
	assert.Equal(t, VaccinesYes, p.VaccinesUpToDate)
	assert.NotNil(t, p.Operations)
	assert.Empty(t, p.Operations)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 123e6, time.UTC), p.CreatedAt.Time)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"age":"7"`)
	assert.Contains(t, string(out), `"createdAt":"2024-03-01T10:20:30.123Z"`)
}

func TestTimestamp_Unparseable_KeepsRawAndZeroTime(t *testing.T) {
	var p Patient
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","createdAt":"ayer"}`), &p))

	assert.True(t, p.CreatedAt.Time.IsZero())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":"ayer"`)
}

func TestAge_Number(t *testing.T) {
	n, ok := Age(" 3.5 ").Number()
	assert.True(t, ok)
	assert.Equal(t, 3.5, n)

	_, ok = Age("").Number()
	assert.False(t, ok)

	_, ok = Age("tres").Number()
	assert.False(t, ok)
}

func TestDraft_Apply_OnlyPresentFields(t *testing.T) {
	p := Patient{PatientName: "Milo", Species: "Perro", OwnerName: "Ana", Notes: "old"}
	name := "Milo II"
	empty := ""
	ops := []string{"Castración"}

	d := p.Draft().Apply(Patch{PatientName: &name, Notes: &empty, Operations: &ops})

	assert.Equal(t, "Milo II", d.PatientName)
	assert.Equal(t, "Perro", d.Species)
	assert.Equal(t, "Ana", d.OwnerName)
	assert.Equal(t, "", d.Notes)
	assert.Equal(t, []string{"Castración"}, d.Operations)
}

func TestPatient_DecodesLooseFieldTypes(t *testing.T) {
	raw := `{
		"id": 1700000000000,
		"patientName": "Max",
		"species": "Perro",
		"ownerName": "Ana",
		"ownerPhone": 1155550000,
		"notes": null,
		"operations": null,
		"createdAt": "2024-03-01T10:20:30.123Z"
	}`

	var p Patient
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "1700000000000", p.ID)
	assert.Equal(t, "1155550000", p.OwnerPhone)
	assert.Equal(t, "", p.Notes)
	assert.Equal(t, []string{}, p.Operations)
	assert.Equal(t, []string{}, p.RecentStudies)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"operations":[]`)
	assert.Contains(t, string(out), `"recentStudies":[]`)
}

func TestPatient_RejectsNonObject(t *testing.T) {
	var p Patient
	assert.Error(t, json.Unmarshal([]byte(`42`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"x","patientName":{"first":"Max"}}`), &p))
}

func TestTimestamp_EpochMillis_ParsesAndIsWrittenBackUnchanged(t *testing.T) {
	var p Patient
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","createdAt":1704067200000}`), &p))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.CreatedAt.Time)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":1704067200000`)
}

func TestTimestamp_DateOnly_ParsesAsUTC(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-15"`), &ts))

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), ts.Time)
	assert.Equal(t, "2024-01-15T00:00:00.000Z", ts.String())

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(out))
}

func TestTimestamp_NewIsFormatted(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 6e6+789, time.UTC))

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02T03:04:05.006Z"`, string(out))
}
