package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rahulk/studyshare/internal/app/models"
	"github.com/rahulk/studyshare/internal/app/models/dto"
	"github.com/rahulk/studyshare/internal/pkg/apperrors"
)

// In-memory store fakes so service behavior is tested without a database.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) addUser(email string, role models.UserRole) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user := &models.User{
		ID:          f.nextID,
		Email:       email,
		Password:    "$2a$12$fakehash",
		DisplayName: strings.Split(email, "@")[0],
		Role:        role,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int64, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for key, value := range updates {
		switch key {
		case "display_name":
			user.DisplayName = value.(string)
		case "bio":
			bio := value.(string)
			user.Bio = &bio
		case "phone":
			phone := value.(string)
			user.Phone = &phone
		case "show_contact":
			user.ShowContact = value.(bool)
		case "photo_url":
			url := value.(string)
			user.PhotoURL = &url
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserStore) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	return f.UpdateProfile(ctx, id, map[string]interface{}{"photo_url": photoURL})
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role models.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*tokenRecord
}

type tokenRecord struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*tokenRecord)}
}

func (f *fakeTokenStore) Create(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &tokenRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, token string) (int64, time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return rec.userID, rec.expiresAt, rec.revoked, nil
}

func (f *fakeTokenStore) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rec.revoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.tokens {
		if rec.userID == userID {
			rec.revoked = true
		}
	}
	return nil
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.ContributorApplication
	users  *fakeUserStore // for promotion on approve
}

func newFakeApplicationStore(users *fakeUserStore) *fakeApplicationStore {
	return &fakeApplicationStore{
		apps:  make(map[int64]*models.ContributorApplication),
		users: users,
	}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.ContributorApplication) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.UserID == app.UserID &&
			(existing.Status == models.ApplicationPending || existing.Status == models.ApplicationApproved) {
			return 0, apperrors.ErrApplicationExists
		}
	}
	f.nextID++
	stored := *app
	stored.ID = f.nextID
	stored.Status = models.ApplicationPending
	stored.AppliedAt = time.Now()
	f.apps[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.ContributorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplicationStore) GetActiveByUser(_ context.Context, userID int64) (*models.ContributorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, app := range f.apps {
		if app.UserID == userID &&
			(app.Status == models.ApplicationPending || app.Status == models.ApplicationApproved) {
			copied := *app
			return &copied, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (f *fakeApplicationStore) GetLatestByUser(_ context.Context, userID int64) (*models.ContributorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.ContributorApplication
	for _, app := range f.apps {
		if app.UserID != userID {
			continue
		}
		if latest == nil || app.AppliedAt.After(latest.AppliedAt) {
			latest = app
		}
	}
	if latest == nil {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeApplicationStore) List(_ context.Context, status *models.ApplicationStatus, offset, limit int) ([]*models.ContributorApplication, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.ContributorApplication
	for _, app := range f.apps {
		if status == nil || app.Status == *status {
			copied := *app
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].AppliedAt.After(matched[j].AppliedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeApplicationStore) Approve(ctx context.Context, applicationID, reviewerID int64) error {
	f.mu.Lock()
	app, ok := f.apps[applicationID]
	if !ok {
		f.mu.Unlock()
		return apperrors.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		f.mu.Unlock()
		return apperrors.NewConflictError(fmt.Sprintf("application is already %s", app.Status))
	}
	now := time.Now()
	app.Status = models.ApplicationApproved
	app.ReviewedAt = &now
	app.ReviewedBy = &reviewerID
	userID := app.UserID
	f.mu.Unlock()

	return f.users.UpdateRole(ctx, userID, models.RoleContributor)
}

func (f *fakeApplicationStore) Reject(_ context.Context, applicationID, reviewerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[applicationID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	if app.Status != models.ApplicationPending {
		return apperrors.NewConflictError(fmt.Sprintf("application is already %s", app.Status))
	}
	now := time.Now()
	app.Status = models.ApplicationRejected
	app.ReviewedAt = &now
	app.ReviewedBy = &reviewerID
	return nil
}

type fakeResourceStore struct {
	mu        sync.Mutex
	nextID    int64
	resources map[int64]*models.Resource
}

func newFakeResourceStore() *fakeResourceStore {
	return &fakeResourceStore{resources: make(map[int64]*models.Resource)}
}

func (f *fakeResourceStore) addResource(uploaderID int64, title string) *models.Resource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	res := &models.Resource{
		ID:         f.nextID,
		Title:      title,
		Type:       models.ResourceNotes,
		Subject:    "Subject",
		Semester:   "4",
		FileURL:    fmt.Sprintf("http://localhost:8080/uploads/resources/%d.pdf", f.nextID),
		FileName:   title + ".pdf",
		UploaderID: uploaderID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.resources[res.ID] = res
	return res
}

func (f *fakeResourceStore) Create(_ context.Context, res *models.Resource) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *res
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.resources[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeResourceStore) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeResourceStore) List(_ context.Context, filter *dto.ResourceFilterRequest, offset, limit int) ([]*models.Resource, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Resource
	for _, res := range f.resources {
		if filter.Type != nil && string(res.Type) != *filter.Type {
			continue
		}
		if filter.Subject != nil && res.Subject != *filter.Subject {
			continue
		}
		if filter.Semester != nil && res.Semester != *filter.Semester {
			continue
		}
		copied := *res
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeResourceStore) ListByUploader(_ context.Context, uploaderID int64) ([]*models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Resource
	for _, res := range f.resources {
		if res.UploaderID == uploaderID {
			copied := *res
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (f *fakeResourceStore) Update(_ context.Context, id int64, _ map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resources[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

func (f *fakeResourceStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resources[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceStore) IncrementDownloads(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	res.DownloadCount++
	return nil
}

func (f *fakeResourceStore) UpdateRatingStats(_ context.Context, id int64, average float64, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	res.AverageRating = average
	res.TotalRatings = total
	return nil
}

func (f *fakeResourceStore) Facets(_ context.Context) (*dto.FacetsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	subjects := make(map[string]struct{})
	semesters := make(map[string]struct{})
	tags := make(map[string]struct{})
	for _, res := range f.resources {
		subjects[res.Subject] = struct{}{}
		semesters[res.Semester] = struct{}{}
		for _, tag := range res.Tags {
			tags[tag] = struct{}{}
		}
	}
	facets := &dto.FacetsResponse{Subjects: []string{}, Semesters: []string{}, Tags: []string{}}
	for s := range subjects {
		facets.Subjects = append(facets.Subjects, s)
	}
	for s := range semesters {
		facets.Semesters = append(facets.Semesters, s)
	}
	for t := range tags {
		facets.Tags = append(facets.Tags, t)
	}
	sort.Strings(facets.Subjects)
	sort.Strings(facets.Semesters)
	sort.Strings(facets.Tags)
	return facets, nil
}

type ratingKey struct {
	resourceID int64
	userID     int64
}

type fakeRatingStore struct {
	mu      sync.Mutex
	nextID  int64
	ratings map[ratingKey]*models.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[ratingKey]*models.Rating)}
}

func (f *fakeRatingStore) Upsert(_ context.Context, rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey{rating.ResourceID, rating.UserID}
	if existing, ok := f.ratings[key]; ok {
		existing.Rating = rating.Rating
		return nil
	}
	f.nextID++
	stored := *rating
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.ratings[key] = &stored
	return nil
}

func (f *fakeRatingStore) GetByResourceAndUser(_ context.Context, resourceID, userID int64) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rating, ok := f.ratings[ratingKey{resourceID, userID}]
	if !ok {
		return nil, apperrors.ErrRatingNotFound
	}
	copied := *rating
	return &copied, nil
}

func (f *fakeRatingStore) ListByResource(_ context.Context, resourceID int64) ([]*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Rating
	for key, rating := range f.ratings {
		if key.resourceID == resourceID {
			copied := *rating
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[int64]*models.Comment)}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *comment
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.comments[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentStore) ListByResource(_ context.Context, resourceID int64) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Comment
	for _, comment := range f.comments {
		if comment.ResourceID == resourceID {
			copied := *comment
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

type fakeFileStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeFileStorage) Save(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	url := "http://localhost:8080/uploads/" + subPath + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFileStorage) Delete(fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileURL)
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	decisions []models.ApplicationStatus
}

func (f *fakeNotifier) SendApplicationDecision(_, _ string, status models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions = append(f.decisions, status)
	return nil
}
