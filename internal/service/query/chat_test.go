package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestBuildChatReply_EmptyMessage(t *testing.T) {
	reply := BuildChatReply("  ", defaultTestRegistry())

	assert.Equal(t, "Please ask me about parking availability or slot status.", reply.Text)
	assert.Empty(t, reply.FollowupQuery)
}

func TestBuildChatReply_CountQuestion(t *testing.T) {
	reply := BuildChatReply("How many cars are parked?", defaultTestRegistry())

	assert.Equal(t, "There are 3 cars parked and 3 free slots out of 6.", reply.Text)
	assert.Empty(t, reply.FollowupQuery)
}

func TestBuildChatReply_CountQuestionSingular(t *testing.T) {
	reg := testRegistry(
		[2]string{"occupied", "normal"},
		[2]string{"empty", "normal"},
	)

	reply := BuildChatReply("how many vehicles parked", reg)

	assert.Equal(t, "There is 1 car parked and 1 free slot out of 2.", reply.Text)
}

func TestBuildChatReply_VIPAvailability(t *testing.T) {
	reply := BuildChatReply("Which VIP slot is free?", defaultTestRegistry())

	assert.Equal(t, "VIP slots open: Slot 2. I highlighted them for you.", reply.Text)
	assert.Equal(t, "VIP empty slots", reply.FollowupQuery)
}

func TestBuildChatReply_VIPAllOccupied(t *testing.T) {
	reg := testRegistry(
		[2]string{"occupied", "vip"},
		[2]string{"empty", "normal"},
	)

	reply := BuildChatReply("any vip slots available?", reg)

	assert.Equal(t, "All VIP slots are occupied at the moment.", reply.Text)
	assert.Empty(t, reply.FollowupQuery)
}

func TestBuildChatReply_NearestQuestion(t *testing.T) {
	reply := BuildChatReply("Nearest empty slot?", defaultTestRegistry())

	assert.Equal(t, "Slot 2 is the closest empty spot.", reply.Text)
	assert.Equal(t, "nearest empty slot", reply.FollowupQuery)
}

func TestBuildChatReply_ParkForMe(t *testing.T) {
	reply := BuildChatReply("Where should I park?", defaultTestRegistry())

	assert.Equal(t, "Slot 2 is the closest empty spot.", reply.Text)
	assert.Equal(t, "nearest empty slot", reply.FollowupQuery)
}

func TestBuildChatReply_NearestVIP(t *testing.T) {
	reply := BuildChatReply("closest vip spot?", defaultTestRegistry())

	assert.Equal(t, "VIP Slot 2 is the closest empty spot.", reply.Text)
	assert.Equal(t, "nearest empty vip slot", reply.FollowupQuery)
}

func TestBuildChatReply_NearestNoneFree(t *testing.T) {
	reg := testRegistry([2]string{"occupied", "normal"})

	reply := BuildChatReply("nearest empty slot", reg)

	assert.Equal(t, "I couldn’t find a free spot right now. I’ll keep highlighting new openings as they appear.", reply.Text)
	assert.Empty(t, reply.FollowupQuery)
}

func TestBuildChatReply_SearchDelegation(t *testing.T) {
	reply := BuildChatReply("Show me empty slots", defaultTestRegistry())

	assert.Equal(t, "Highlighted 3 empty slots. (Slot 2, Slot 3, Slot 5)", reply.Text)
	assert.Equal(t, "Show me empty slots", reply.FollowupQuery)
}

func TestBuildChatReply_Unrecognized(t *testing.T) {
	reply := BuildChatReply("what's the weather like?", defaultTestRegistry())

	assert.Equal(t, helpText, reply.Text)
	assert.Empty(t, reply.FollowupQuery)
}

type fakeLoader struct {
	reg *domain.Registry
}

func (f *fakeLoader) Load(_ context.Context) (*domain.Registry, error) {
	return f.reg, nil
}

func TestService_Search(t *testing.T) {
	svc := NewService(&fakeLoader{reg: defaultTestRegistry()}, testLogger{})

	result, err := svc.Search(context.Background(), "empty slots")

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, result.Indices)
}

func TestService_Chat_FollowupDrivesHighlight(t *testing.T) {
	svc := NewService(&fakeLoader{reg: defaultTestRegistry()}, testLogger{})

	result, err := svc.Chat(context.Background(), "Which VIP slot is free?")

	require.NoError(t, err)
	assert.Equal(t, "VIP slots open: Slot 2. I highlighted them for you.", result.Text)
	assert.Equal(t, "VIP empty slots", result.FollowupQuery)
	assert.Equal(t, []int{1}, result.Indices)
}

func TestService_Chat_NoFollowupMeansNoHighlight(t *testing.T) {
	svc := NewService(&fakeLoader{reg: defaultTestRegistry()}, testLogger{})

	result, err := svc.Chat(context.Background(), "How many cars are parked?")

	require.NoError(t, err)
	assert.Empty(t, result.Indices)
	assert.NotNil(t, result.Indices)
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
