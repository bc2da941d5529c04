package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsMatchColumns(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			rec, err := New(kind)
			require.NoError(t, err)
			assert.Len(t, rec.Row(), len(Columns(kind)))
		})
	}
}

func TestJobFromRow(t *testing.T) {
	rec, err := FromRow(KindJob, map[string]string{
		"Job ID":                 "j1",
		ColCustomerID:            "c1",
		ColMachineID:             "m1",
		"Travel Time (min)":      "20.0",
		"Machine as Found Paths": "a.png;b.mp4",
		"Machine as Left Paths":  "c.png",
	})
	require.NoError(t, err)

	job := rec.(*Job)
	assert.Equal(t, 20, job.TravelMinutes)
	assert.Equal(t, []string{"a.png", "b.mp4"}, job.FoundPaths)
	assert.Equal(t, "c1", job.Field(ColCustomerID))
	assert.Equal(t, "m1", job.Field(ColMachineID))
}

func TestJobFromRowRejectsBadMinutes(t *testing.T) {
	_, err := FromRow(KindJob, map[string]string{"Job ID": "j1", "Travel Time (min)": "soon"})
	assert.Error(t, err)
}

func TestMachineLabel(t *testing.T) {
	m := &Machine{Brand: "Rancilio", Model: "Silvia"}
	assert.Equal(t, "Rancilio (Silvia)", m.Label())
}

func TestUnknownKind(t *testing.T) {
	_, err := New(Kind("dorms"))
	assert.Error(t, err)
	assert.Nil(t, Columns(Kind("dorms")))
}
