package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_ComposesTablesGroupsAndReservations(t *testing.T) {
	db := setupTestDB(t)
	instance, tables := openLayout(t, db, 4)
	grouping := NewGroupingService(db)

	pair, err := grouping.Group(testDate, []uint{tables[1].ID, tables[0].ID})
	require.NoError(t, err)
	single, err := grouping.Group(testDate, []uint{tables[3].ID})
	require.NoError(t, err)

	res, err := NewReservationService(db).Create(testDate, pair.Created, ReservationInput{
		Time: "19:00", Name: "Smith", PartySize: 4,
	})
	require.NoError(t, err)

	snapshot, err := NewSnapshotService(db).Snapshot(instance)
	require.NoError(t, err)

	assert.Equal(t, instance.ID, snapshot.InstanceID)
	assert.Equal(t, testDate, snapshot.Date)

	require.Len(t, snapshot.Tables, 4)
	first := snapshot.Tables[0]
	assert.Equal(t, tables[0].ID, first.TableID)
	assert.Equal(t, "T1", first.Name)
	assert.Equal(t, tables[0].Width, first.Width)
	assert.Equal(t, tables[0].Height, first.Height)
	require.NotNil(t, first.Capacity)
	assert.Equal(t, *tables[0].Capacity, *first.Capacity)
	assert.Nil(t, snapshot.Tables[2].GroupID)

	require.Len(t, snapshot.Groups, 2)
	assert.Equal(t, pair.Created, snapshot.Groups[0].GroupID)
	assert.Equal(t, []uint{tables[0].ID, tables[1].ID}, snapshot.Groups[0].TableIDs)
	require.NotNil(t, snapshot.Groups[0].ReservationID)
	assert.Equal(t, res.ID, *snapshot.Groups[0].ReservationID)

	assert.Equal(t, single.Created, snapshot.Groups[1].GroupID)
	assert.Equal(t, []uint{tables[3].ID}, snapshot.Groups[1].TableIDs)
	assert.Nil(t, snapshot.Groups[1].ReservationID)

	require.Len(t, snapshot.Reservations, 1)
	assert.Equal(t, "Smith", snapshot.Reservations[0].Name)
}

func TestSnapshot_EmptyLayout(t *testing.T) {
	db := setupTestDB(t)
	instance, _, err := NewLayoutService(db).EnsureInstance(testDate)
	require.NoError(t, err)

	snapshot, err := NewSnapshotService(db).Snapshot(instance)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Tables)
	assert.Empty(t, snapshot.Groups)
	assert.Empty(t, snapshot.Reservations)
}
