package rfid

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMachineService(t *testing.T) {
	store := memory.NewStore(clock.New(time.UTC))
	ctx := context.Background()
	_, err := store.Rooms().Create(ctx, room.Room{ID: "room-a", Name: "A"})
	require.NoError(t, err)

	svc := NewMachineService(store.Machines())

	created, err := svc.CreateMachine(ctx, rfid.CreateMachineRequest{Name: strPtr("Front door"), RoomID: strPtr("room-a"), AllowCheckin: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.AllowCheckin)

	_, err = svc.CreateMachine(ctx, rfid.CreateMachineRequest{RoomID: strPtr("room-x")})
	assert.ErrorIs(t, err, room.ErrRoomNotFound)

	inRoom, err := svc.ListMachines(ctx, rfid.MachineFilter{RoomID: strPtr("room-a")})
	require.NoError(t, err)
	require.Len(t, inRoom, 1)
	assert.Equal(t, created.ID, inRoom[0].ID)

	require.NoError(t, svc.DeleteMachine(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteMachine(ctx, created.ID), rfid.ErrMachineNotFound)
}

func TestCardService(t *testing.T) {
	store := memory.NewStore(clock.New(time.UTC))
	ctx := context.Background()
	for _, e := range []employee.Employee{
		{ID: "emp-1", Username: "alice", Email: "alice@example.com", Role: employee.RoleEmployee},
		{ID: "emp-2", Username: "bob", Email: "bob@example.com", Role: employee.RoleEmployee},
	} {
		_, err := store.Employees().Create(ctx, e)
		require.NoError(t, err)
	}

	svc := NewCardService(store.Cards())

	_, err := svc.CreateCard(ctx, rfid.CreateCardRequest{ID: "CARD0001", EmployeeID: strPtr("emp-1")})
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, rfid.CreateCardRequest{ID: "CARD0002"})
	require.NoError(t, err)

	_, err = svc.CreateCard(ctx, rfid.CreateCardRequest{ID: "CARD0001"})
	assert.ErrorIs(t, err, rfid.ErrCardExists)

	_, err = svc.CreateCard(ctx, rfid.CreateCardRequest{ID: "CARD0003", EmployeeID: strPtr("emp-1")})
	assert.ErrorIs(t, err, rfid.ErrEmployeeHasCard)

	available, err := svc.ListCards(ctx, rfid.CardFilter{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "CARD0002", available[0].ID)

	assigned, err := svc.AssignCard(ctx, rfid.AssignCardRequest{CardID: "CARD0002", EmployeeID: "emp-2"})
	require.NoError(t, err)
	require.NotNil(t, assigned.EmployeeID)
	assert.Equal(t, "emp-2", *assigned.EmployeeID)

	_, err = svc.AssignCard(ctx, rfid.AssignCardRequest{CardID: "CARD9999", EmployeeID: "emp-2"})
	assert.ErrorIs(t, err, rfid.ErrCardNotFound)

	require.NoError(t, svc.DeleteCard(ctx, "CARD0002"))
	all, err := svc.ListCards(ctx, rfid.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
