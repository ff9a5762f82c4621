package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

func newResourceServiceForTest() (*ResourceService, *fakeUserStore, *fakeResourceStore, *fakeFileStorage) {
	users := newFakeUserStore()
	resources := newFakeResourceStore()
	storage := &fakeFileStorage{}
	return NewResourceService(resources, users, storage), users, resources, storage
}

func validUploadRequest() *dto.UploadResourceRequest {
	return &dto.UploadResourceRequest{
		Title:    "DBMS Unit 3 Notes",
		Type:     "notes",
		Subject:  "Database Management Systems",
		Semester: "4",
		Tags:     "DBMS, normalization , dbms,",
	}
}

func testFileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 2048}
}

func TestUploadResource(t *testing.T) {
	svc, users, _, storage := newResourceServiceForTest()
	contributor := users.addUser("senior@college.ac.in", models.RoleContributor)

	res, err := svc.Upload(context.Background(), contributor.ID, validUploadRequest(), testFileHeader("dbms.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "DBMS Unit 3 Notes", res.Title)
	assert.Equal(t, "notes", res.Type)
	assert.Equal(t, contributor.ID, res.UploaderID)
	// Tags are lowercased, trimmed and deduplicated.
	assert.Equal(t, []string{"dbms", "normalization"}, res.Tags)
	assert.Equal(t, "dbms.pdf", res.FileName)
	assert.Len(t, storage.saved, 1)
}

func TestUploadRequiresContributorRole(t *testing.T) {
	svc, users, _, storage := newResourceServiceForTest()
	viewer := users.addUser("fresher@college.ac.in", models.RoleViewer)

	_, err := svc.Upload(context.Background(), viewer.ID, validUploadRequest(), testFileHeader("dbms.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, storage.saved)
}

func TestUploadAdminAllowed(t *testing.T) {
	svc, users, _, _ := newResourceServiceForTest()
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	_, err := svc.Upload(context.Background(), admin.ID, validUploadRequest(), testFileHeader("dbms.pdf"))
	assert.NoError(t, err)
}

func TestUploadValidation(t *testing.T) {
	svc, users, _, _ := newResourceServiceForTest()
	contributor := users.addUser("senior@college.ac.in", models.RoleContributor)

	t.Run("invalid type", func(t *testing.T) {
		req := validUploadRequest()
		req.Type = "cheatsheet"
		_, err := svc.Upload(context.Background(), contributor.ID, req, testFileHeader("x.pdf"))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("pyq without year", func(t *testing.T) {
		req := validUploadRequest()
		req.Type = "pyq"
		_, err := svc.Upload(context.Background(), contributor.ID, req, testFileHeader("x.pdf"))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("pyq with year", func(t *testing.T) {
		req := validUploadRequest()
		req.Type = "pyq"
		year := 2024
		req.Year = &year
		_, err := svc.Upload(context.Background(), contributor.ID, req, testFileHeader("x.pdf"))
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.Upload(context.Background(), contributor.ID, validUploadRequest(), nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeleteResourcePermissions(t *testing.T) {
	svc, users, resources, storage := newResourceServiceForTest()
	owner := users.addUser("owner@college.ac.in", models.RoleContributor)
	other := users.addUser("other@college.ac.in", models.RoleContributor)
	admin := users.addUser("admin@college.ac.in", models.RoleAdmin)

	res := resources.addResource(owner.ID, "DBMS Notes")

	// A different contributor cannot delete it.
	err := svc.Delete(context.Background(), other.ID, res.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The owner can.
	err = svc.Delete(context.Background(), owner.ID, res.ID)
	require.NoError(t, err)
	assert.Contains(t, storage.deleted, res.FileURL)

	_, err = svc.Get(context.Background(), res.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// Admins can delete anyone's resource.
	res2 := resources.addResource(owner.ID, "OS Notes")
	err = svc.Delete(context.Background(), admin.ID, res2.ID)
	assert.NoError(t, err)
}

func TestRecordDownload(t *testing.T) {
	svc, _, resources, _ := newResourceServiceForTest()
	res := resources.addResource(1, "DBMS Notes")

	fileURL, err := svc.RecordDownload(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.FileURL, fileURL)

	_, err = svc.RecordDownload(context.Background(), res.ID)
	require.NoError(t, err)

	stored, err := resources.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.DownloadCount)
}

func TestRecordDownloadUnknownResource(t *testing.T) {
	svc, _, _, _ := newResourceServiceForTest()

	_, err := svc.RecordDownload(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListResourcesFiltered(t *testing.T) {
	svc, users, resources, _ := newResourceServiceForTest()
	contributor := users.addUser("senior@college.ac.in", models.RoleContributor)

	resources.addResource(contributor.ID, "DBMS Notes")
	resources.addResource(contributor.ID, "OS Notes")

	list, pagination, err := svc.List(context.Background(), &dto.ResourceFilterRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(2), pagination.TotalItems)

	notes := "notes"
	list, _, err = svc.List(context.Background(), &dto.ResourceFilterRequest{Type: &notes, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	pyq := "pyq"
	list, _, err = svc.List(context.Background(), &dto.ResourceFilterRequest{Type: &pyq, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListMine(t *testing.T) {
	svc, users, resources, _ := newResourceServiceForTest()
	a := users.addUser("a@college.ac.in", models.RoleContributor)
	b := users.addUser("b@college.ac.in", models.RoleContributor)

	resources.addResource(a.ID, "DBMS Notes")
	resources.addResource(b.ID, "OS Notes")

	mine, err := svc.ListMine(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "DBMS Notes", mine[0].Title)
}

func TestContactVisibility(t *testing.T) {
	email := "owner@college.ac.in"
	phone := "9876543210"

	hidden := &models.Resource{
		ID: 1, Title: "Notes", Type: models.ResourceNotes,
		UploaderEmail: &email, UploaderPhone: &phone, ShowContact: false,
	}
	resp := dto.NewResourceResponse(hidden)
	assert.Nil(t, resp.UploaderEmail)
	assert.Nil(t, resp.UploaderPhone)

	shown := &models.Resource{
		ID: 2, Title: "Notes", Type: models.ResourceNotes,
		UploaderEmail: &email, UploaderPhone: &phone, ShowContact: true,
	}
	resp = dto.NewResourceResponse(shown)
	require.NotNil(t, resp.UploaderEmail)
	assert.Equal(t, email, *resp.UploaderEmail)
}
