package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

func newApplicationServiceForTest() (*ApplicationService, *fakeUserStore, *fakeApplicationStore, *fakeNotifier) {
	users := newFakeUserStore()
	apps := newFakeApplicationStore(users)
	notifier := &fakeNotifier{}
	return NewApplicationService(apps, users, notifier), users, apps, notifier
}

func validApplicationRequest() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		FullName:         "Rahul Kumar",
		CollegeRollNo:    "CSE/22/074",
		UniversityRollNo: "2201023456",
		Batch:            "2022-2026",
	}
}

func TestSubmitApplication(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)

	app, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	assert.Equal(t, string(models.ApplicationPending), app.Status)
	assert.Equal(t, viewer.ID, app.UserID)
	assert.Equal(t, viewer.Email, app.ApplicantEmail)
	assert.Equal(t, viewer.DisplayName, app.ApplicantName)
	assert.Equal(t, "2022-2026", app.Batch)
	assert.Nil(t, app.ReviewedAt)
	assert.Nil(t, app.ReviewedBy)
}

func TestSubmitApplicationMissingFields(t *testing.T) {
	svc, users, apps, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)

	tests := []struct {
		name   string
		mutate func(req *dto.SubmitApplicationRequest)
	}{
		{"empty full name", func(req *dto.SubmitApplicationRequest) { req.FullName = "  " }},
		{"empty college roll", func(req *dto.SubmitApplicationRequest) { req.CollegeRollNo = "" }},
		{"empty university roll", func(req *dto.SubmitApplicationRequest) { req.UniversityRollNo = "" }},
		{"empty batch", func(req *dto.SubmitApplicationRequest) { req.Batch = "   " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validApplicationRequest()
			tc.mutate(req)

			_, err := svc.Submit(context.Background(), viewer.ID, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}

	// Validation failures must not create anything.
	_, err := apps.GetLatestByUser(context.Background(), viewer.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)

	_, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	assert.ErrorIs(t, err, apperrors.ErrApplicationExists)
}

func TestSubmitApplicationAlreadyContributor(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	contributor := users.addUser("senior@college.ac.in", models.RoleContributor)

	_, err := svc.Submit(context.Background(), contributor.ID, validApplicationRequest())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestApproveApplication(t *testing.T) {
	svc, users, _, notifier := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	submitted, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), admin.ID, submitted.ID)
	require.NoError(t, err)

	assert.Equal(t, string(models.ApplicationApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, admin.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	// Approval promotes the applicant.
	promoted, err := users.GetByID(context.Background(), viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleContributor, promoted.Role)

	require.Len(t, notifier.decisions, 1)
	assert.Equal(t, models.ApplicationApproved, notifier.decisions[0])
}

func TestRejectApplication(t *testing.T) {
	svc, users, _, notifier := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	submitted, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), admin.ID, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ApplicationRejected), rejected.Status)

	// Rejection does not change the applicant's role.
	unchanged, err := users.GetByID(context.Background(), viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, unchanged.Role)

	require.Len(t, notifier.decisions, 1)
	assert.Equal(t, models.ApplicationRejected, notifier.decisions[0])
}

func TestDecideNonPendingApplication(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	submitted, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), admin.ID, submitted.ID)
	require.NoError(t, err)

	// Decisions are terminal.
	_, err = svc.Approve(context.Background(), admin.ID, submitted.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Reject(context.Background(), admin.ID, submitted.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDecideRequiresAdmin(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)
	other := users.addUser("other@college.ac.in", models.RoleContributor)

	submitted, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), other.ID, submitted.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Reject(context.Background(), viewer.ID, submitted.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApproveUnknownApplication(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	_, err := svc.Approve(context.Background(), admin.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestListApplications(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	for _, email := range []string{"a@college.ac.in", "b@college.ac.in", "c@college.ac.in"} {
		viewer := users.addUser(email, models.RoleViewer)
		_, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
		require.NoError(t, err)
	}

	apps, pagination, err := svc.List(context.Background(), admin.ID, nil, 1, 20)
	require.NoError(t, err)
	assert.Len(t, apps, 3)
	assert.Equal(t, int64(3), pagination.TotalItems)

	pending := models.ApplicationPending
	apps, _, err = svc.List(context.Background(), admin.ID, &pending, 1, 20)
	require.NoError(t, err)
	assert.Len(t, apps, 3)

	rejected := models.ApplicationRejected
	apps, _, err = svc.List(context.Background(), admin.ID, &rejected, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestListApplicationsRequiresAdmin(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)

	_, _, err := svc.List(context.Background(), viewer.ID, nil, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetOwnApplication(t *testing.T) {
	svc, users, _, _ := newApplicationServiceForTest()
	viewer := users.addUser("rahul@college.ac.in", models.RoleViewer)

	_, err := svc.GetOwn(context.Background(), viewer.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	submitted, err := svc.Submit(context.Background(), viewer.ID, validApplicationRequest())
	require.NoError(t, err)

	own, err := svc.GetOwn(context.Background(), viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, own.ID)
}
