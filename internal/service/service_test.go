package service

import (
	"context"
	"testing"
	"time"

	"coursehub/internal/auth"
	"coursehub/internal/model"
	"coursehub/internal/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ============================================================================
// In-memory fakes
// ============================================================================

type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = bson.NewObjectID()
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, e := range r.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, e := range r.users {
		if e.ID.Hex() == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCreatorRepo struct {
	creators []*model.Creator
}

func (r *fakeCreatorRepo) Create(_ context.Context, c *model.Creator) error {
	for _, e := range r.creators {
		if e.Email == c.Email {
			return repository.ErrDuplicate
		}
	}
	c.ID = bson.NewObjectID()
	cp := *c
	r.creators = append(r.creators, &cp)
	return nil
}

func (r *fakeCreatorRepo) GetByEmail(_ context.Context, email string) (*model.Creator, error) {
	for _, e := range r.creators {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCreatorRepo) GetByID(_ context.Context, id string) (*model.Creator, error) {
	for _, e := range r.creators {
		if e.ID.Hex() == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCourseRepo struct {
	courses []*model.Course
	// lookupDelay makes per-course lookups finish out of order to exercise
	// the ordering guarantee of concurrent purchase resolution.
	lookupDelay map[string]time.Duration
}

func (r *fakeCourseRepo) Create(_ context.Context, c *model.Course) error {
	c.ID = bson.NewObjectID()
	cp := *c
	r.courses = append(r.courses, &cp)
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if d, ok := r.lookupDelay[id]; ok {
		time.Sleep(d)
	}
	for _, c := range r.courses {
		if c.ID.Hex() == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) List(_ context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByCreator(_ context.Context, creatorID string) ([]model.Course, error) {
	out := []model.Course{}
	for _, c := range r.courses {
		if c.CreatorID.Hex() == creatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) UpdateOwned(_ context.Context, courseID, creatorID string, patch *model.Course) error {
	for _, c := range r.courses {
		if c.ID.Hex() == courseID && c.CreatorID.Hex() == creatorID {
			c.Title = patch.Title
			c.Description = patch.Description
			c.Price = patch.Price
			c.ImageURL = patch.ImageURL
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeCourseRepo) DeleteOwned(_ context.Context, courseID, creatorID string) error {
	for i, c := range r.courses {
		if c.ID.Hex() == courseID && c.CreatorID.Hex() == creatorID {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePurchaseRepo struct {
	purchases []model.Purchase
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	p.ID = bson.NewObjectID()
	r.purchases = append(r.purchases, *p)
	return nil
}

func (r *fakePurchaseRepo) ListByUser(_ context.Context, userID string) ([]model.Purchase, error) {
	out := []model.Purchase{}
	for _, p := range r.purchases {
		if p.UserID.Hex() == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	for _, p := range r.purchases {
		if p.UserID.Hex() == userID && p.CourseID.Hex() == courseID {
			return true, nil
		}
	}
	return false, nil
}

func newUserService(users repository.UserRepository, courses repository.CourseRepository, purchases repository.PurchaseRepository) UserService {
	return NewUserService(users, courses, purchases, auth.NewPasswordHasher(auth.DefaultBcryptCost), auth.NewTokenService("user-secret", 0))
}

// ============================================================================
// User service
// ============================================================================

func TestUserSignupSignin(t *testing.T) {
	svc := newUserService(&fakeUserRepo{}, &fakeCourseRepo{}, &fakePurchaseRepo{})
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan", "Dane", "jordan@example.com", "Sup3r$ecret"))

	token, err := svc.Signin(ctx, "jordan@example.com", "Sup3r$ecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = svc.Signin(ctx, "jordan@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Signin(ctx, "nobody@example.com", "Sup3r$ecret")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUserSignupDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newUserService(repo, &fakeCourseRepo{}, &fakePurchaseRepo{})
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "Jordan", "Dane", "jordan@example.com", "Sup3r$ecret"))
	require.ErrorIs(t, svc.Signup(ctx, "Other", "Name", "jordan@example.com", "Sup3r$ecret"), ErrEmailTaken)
	require.Len(t, repo.users, 1, "a second record must never be created")
}

// racyUserRepo simulates a concurrent signup: the pre-create lookup misses
// but the unique index still rejects the insert.
type racyUserRepo struct {
	fakeUserRepo
}

func (r *racyUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}

func TestUserSignupDuplicateEmailRace(t *testing.T) {
	repo := &racyUserRepo{}
	repo.users = append(repo.users, &model.User{ID: bson.NewObjectID(), Email: "jordan@example.com"})
	svc := newUserService(repo, &fakeCourseRepo{}, &fakePurchaseRepo{})

	err := svc.Signup(context.Background(), "Jordan", "Dane", "jordan@example.com", "Sup3r$ecret")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserPurchasesPreservesOrder(t *testing.T) {
	courseRepo := &fakeCourseRepo{lookupDelay: map[string]time.Duration{}}
	purchaseRepo := &fakePurchaseRepo{}
	svc := newUserService(&fakeUserRepo{}, courseRepo, purchaseRepo)
	ctx := context.Background()

	userID := bson.NewObjectID()
	titles := []string{"First", "Second", "Third", "Fourth"}
	var courseIDs []bson.ObjectID
	for i, title := range titles {
		c := &model.Course{Title: title, Description: "d", Price: 10, ImageURL: "u", CreatorID: bson.NewObjectID()}
		require.NoError(t, courseRepo.Create(ctx, c))
		courseIDs = append(courseIDs, c.ID)
		// Earlier purchases resolve slower than later ones.
		courseRepo.lookupDelay[c.ID.Hex()] = time.Duration(len(titles)-i) * 10 * time.Millisecond
	}
	for _, id := range courseIDs {
		require.NoError(t, purchaseRepo.Create(ctx, &model.Purchase{UserID: userID, CourseID: id}))
	}

	purchases, courses, err := svc.Purchases(ctx, userID.Hex())
	require.NoError(t, err)
	require.Len(t, purchases, len(titles))
	require.Len(t, courses, len(titles))
	for i, want := range titles {
		require.NotNil(t, courses[i])
		require.Equal(t, want, courses[i].Title)
	}
}

func TestUserPurchasesMissingCourseYieldsNil(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	purchaseRepo := &fakePurchaseRepo{}
	svc := newUserService(&fakeUserRepo{}, courseRepo, purchaseRepo)
	ctx := context.Background()

	userID := bson.NewObjectID()
	course := &model.Course{Title: "Kept", Description: "d", Price: 10, ImageURL: "u", CreatorID: bson.NewObjectID()}
	require.NoError(t, courseRepo.Create(ctx, course))

	require.NoError(t, purchaseRepo.Create(ctx, &model.Purchase{UserID: userID, CourseID: bson.NewObjectID()}))
	require.NoError(t, purchaseRepo.Create(ctx, &model.Purchase{UserID: userID, CourseID: course.ID}))

	_, courses, err := svc.Purchases(ctx, userID.Hex())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Nil(t, courses[0], "deleted course resolves to nil, not an error")
	require.NotNil(t, courses[1])
	require.Equal(t, "Kept", courses[1].Title)
}

func TestUserPurchasesEmpty(t *testing.T) {
	svc := newUserService(&fakeUserRepo{}, &fakeCourseRepo{}, &fakePurchaseRepo{})

	purchases, courses, err := svc.Purchases(context.Background(), bson.NewObjectID().Hex())
	require.NoError(t, err)
	require.Empty(t, purchases)
	require.Nil(t, courses)
}

// ============================================================================
// Creator service
// ============================================================================

func newCreatorService(creators repository.CreatorRepository, courses repository.CourseRepository) CreatorService {
	return NewCreatorService(creators, courses, auth.NewPasswordHasher(auth.DefaultBcryptCost), auth.NewTokenService("creator-secret", 0))
}

func TestCreatorCourseOwnership(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	svc := newCreatorService(&fakeCreatorRepo{}, courseRepo)
	ctx := context.Background()

	owner := bson.NewObjectID().Hex()
	other := bson.NewObjectID().Hex()

	courseID, err := svc.CreateCourse(ctx, owner, "Intro to Go", "A short course", 10, "https://img.example.com/go.png")
	require.NoError(t, err)
	require.NotEmpty(t, courseID)

	// A non-owner cannot update the course.
	err = svc.UpdateCourse(ctx, other, courseID, "Hijacked", "x", 0, "u")
	require.ErrorIs(t, err, ErrCourseNotFound)
	require.Equal(t, "Intro to Go", courseRepo.courses[0].Title)

	// A non-owner cannot delete it either.
	require.ErrorIs(t, svc.DeleteCourse(ctx, other, courseID), ErrCourseNotFound)
	require.Len(t, courseRepo.courses, 1)

	// The owner can do both.
	require.NoError(t, svc.UpdateCourse(ctx, owner, courseID, "Advanced Go", "Deeper", 20, "https://img.example.com/go2.png"))
	require.Equal(t, "Advanced Go", courseRepo.courses[0].Title)
	require.Equal(t, float64(20), courseRepo.courses[0].Price)

	require.NoError(t, svc.DeleteCourse(ctx, owner, courseID))
	require.Empty(t, courseRepo.courses)
}

func TestCreatorCoursesListsOnlyOwn(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	svc := newCreatorService(&fakeCreatorRepo{}, courseRepo)
	ctx := context.Background()

	a := bson.NewObjectID().Hex()
	b := bson.NewObjectID().Hex()

	_, err := svc.CreateCourse(ctx, a, "Course A", "d", 1, "u")
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, b, "Course B", "d", 2, "u")
	require.NoError(t, err)

	courses, err := svc.Courses(ctx, a)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Course A", courses[0].Title)
}

// ============================================================================
// Course service (purchasing)
// ============================================================================

func TestPurchasePermissiveByDefault(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	purchaseRepo := &fakePurchaseRepo{}
	svc := NewCourseService(courseRepo, purchaseRepo, false, false)
	ctx := context.Background()

	userID := bson.NewObjectID().Hex()
	ghostCourse := bson.NewObjectID().Hex()

	// Neither a missing course nor a duplicate purchase is rejected.
	require.NoError(t, svc.Purchase(ctx, userID, ghostCourse))
	require.NoError(t, svc.Purchase(ctx, userID, ghostCourse))
	require.Len(t, purchaseRepo.purchases, 2)
}

func TestPurchaseEnforceCourseExists(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	purchaseRepo := &fakePurchaseRepo{}
	svc := NewCourseService(courseRepo, purchaseRepo, true, false)
	ctx := context.Background()

	userID := bson.NewObjectID().Hex()
	require.ErrorIs(t, svc.Purchase(ctx, userID, bson.NewObjectID().Hex()), ErrCourseNotFound)

	course := &model.Course{Title: "T", Description: "D", Price: 10, ImageURL: "u", CreatorID: bson.NewObjectID()}
	require.NoError(t, courseRepo.Create(ctx, course))
	require.NoError(t, svc.Purchase(ctx, userID, course.ID.Hex()))
}

func TestPurchasePreventDuplicate(t *testing.T) {
	courseRepo := &fakeCourseRepo{}
	purchaseRepo := &fakePurchaseRepo{}
	svc := NewCourseService(courseRepo, purchaseRepo, false, true)
	ctx := context.Background()

	userID := bson.NewObjectID().Hex()
	courseID := bson.NewObjectID().Hex()

	require.NoError(t, svc.Purchase(ctx, userID, courseID))
	require.ErrorIs(t, svc.Purchase(ctx, userID, courseID), ErrAlreadyPurchased)
	require.Len(t, purchaseRepo.purchases, 1)
}
