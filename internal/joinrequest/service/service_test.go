package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	joinrequestrepository "github.com/monasabatlabs/monasabat/internal/joinrequest/repository"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

func newJoinFixture(t *testing.T) (joinrequestdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&joinrequestdomain.JoinRequest{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  joinrequestrepository.Provide(),
	})
	return svc, db
}

func TestSubmitJoinRequest(t *testing.T) {
	svc, db := newJoinFixture(t)

	jr, err := svc.Submit(context.Background(), joinrequestdomain.SubmitRequest{
		Name:        "  Abu Khalid  ",
		Phone:       " +966501112222 ",
		ServiceType: "wedding halls",
		City:        "Riyadh",
		Notes:       "Two locations downtown",
	})
	require.NoError(t, err)
	assert.Equal(t, joinrequestdomain.StatusPending, jr.Status)
	assert.Equal(t, "Abu Khalid", jr.Name)
	assert.Equal(t, "+966501112222", jr.Phone)

	var stored joinrequestdomain.JoinRequest
	require.NoError(t, db.First(&stored, "id = ?", jr.ID).Error)
	assert.Equal(t, joinrequestdomain.StatusPending, stored.Status)
}

func TestSubmitJoinRequestValidation(t *testing.T) {
	svc, _ := newJoinFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, joinrequestdomain.SubmitRequest{Phone: "+966500000000"})
	assert.ErrorIs(t, err, joinrequestdomain.ErrMissingName)

	_, err = svc.Submit(ctx, joinrequestdomain.SubmitRequest{Name: "Abu Khalid"})
	assert.ErrorIs(t, err, joinrequestdomain.ErrMissingPhone)
}

func TestJoinRequestReviewFlow(t *testing.T) {
	svc, _ := newJoinFixture(t)
	ctx := context.Background()

	jr, err := svc.Submit(ctx, joinrequestdomain.SubmitRequest{
		Name: "Abu Khalid", Phone: "+966501112222",
	})
	require.NoError(t, err)

	// Requests cannot be pushed back to pending.
	_, err = svc.UpdateStatus(ctx, jr.ID, joinrequestdomain.StatusPending)
	assert.ErrorIs(t, err, joinrequestdomain.ErrInvalidStatus)

	reviewed, err := svc.UpdateStatus(ctx, jr.ID, joinrequestdomain.StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, joinrequestdomain.StatusReviewed, reviewed.Status)

	approved, err := svc.UpdateStatus(ctx, jr.ID, joinrequestdomain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, joinrequestdomain.StatusApproved, approved.Status)

	_, err = svc.UpdateStatus(ctx, snowflake.ID(999999), joinrequestdomain.StatusApproved)
	assert.ErrorIs(t, err, joinrequestdomain.ErrJoinRequestNotFound)
}

func TestListJoinRequestsByStatus(t *testing.T) {
	svc, _ := newJoinFixture(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, joinrequestdomain.SubmitRequest{Name: "First", Phone: "+966501"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, joinrequestdomain.SubmitRequest{Name: "Second", Phone: "+966502"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, joinrequestdomain.StatusRejected)
	require.NoError(t, err)

	all, err := svc.List(ctx, joinrequestdomain.ListFilter{}, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.List(ctx, joinrequestdomain.ListFilter{
		Status: joinrequestdomain.StatusPending,
	}, pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Second", pending[0].Name)
}
