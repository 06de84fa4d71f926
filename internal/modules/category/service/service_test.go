package category

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"categories-api/internal/entity"
	"categories-api/internal/modules/category/dto"
	"categories-api/internal/modules/category/query"
	"categories-api/pkg/apperror"
)

// fakeRepo is an in-memory CategoryRepository. Create/Update/Delete errors
// can be forced to simulate constraint violations.
type fakeRepo struct {
	categories []entity.Category
	lastPlan   *query.Plan
	createErr  error
	updateErr  error
}

func (f *fakeRepo) Create(_ context.Context, category *entity.Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories = append(f.categories, *category)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			if slug, ok := fields["slug"].(string); ok {
				f.categories[i].Slug = slug
			}
			if name, ok := fields["name"].(string); ok {
				f.categories[i].Name = name
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			return &f.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountBySlug(_ context.Context, slug string) (int64, error) {
	var count int64
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) List(_ context.Context, plan query.Plan) ([]entity.Category, error) {
	f.lastPlan = &plan
	return f.categories, nil
}

func seededRepo() *fakeRepo {
	return &fakeRepo{categories: []entity.Category{
		{
			ID:     uuid.MustParse("41d36d01-3d06-48ec-90ea-735d95d8a1f2"),
			Slug:   "first",
			Name:   "Мед",
			Active: true,
		},
	}}
}

func createRequest(slug string) dto.CreateCategoryRequest {
	active := true
	return dto.CreateCategoryRequest{
		Slug:   slug,
		Name:   "azaza",
		Active: &active,
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperror.MapErrorToStatus(err))
}

func TestCreateCategory(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)

	created, err := svc.Create(context.Background(), createRequest("second"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "second", created.Slug)
	assert.True(t, created.Active)
	assert.Len(t, repo.categories, 2)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc := NewCategoryService(seededRepo())

	_, err := svc.Create(context.Background(), createRequest("first"))
	assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), `slug "first" already exists`)
}

func TestCreateCategoryLosesConstraintRace(t *testing.T) {
	// The advisory check passes but the insert hits the unique index: the
	// caller still gets the duplicate-slug answer, not a 500.
	repo := &fakeRepo{createErr: gorm.ErrDuplicatedKey}
	svc := NewCategoryService(repo)

	_, err := svc.Create(context.Background(), createRequest("raced"))
	assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), `slug "raced" already exists`)
}

func TestUpdateCategory(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)
	name := "мёд"

	err := svc.Update(context.Background(), repo.categories[0].ID, dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "мёд", repo.categories[0].Name)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(seededRepo())
	name := "whatever"

	err := svc.Update(context.Background(), uuid.New(), dto.UpdateCategoryRequest{Name: &name})
	assertStatus(t, err, http.StatusNotFound)
}

func TestUpdateCategoryDuplicateSlug(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)
	slug := "first"

	// The check does not exclude the target row, so even the category's own
	// current slug is rejected.
	err := svc.Update(context.Background(), repo.categories[0].ID, dto.UpdateCategoryRequest{Slug: &slug})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestUpdateCategoryLosesConstraintRace(t *testing.T) {
	repo := seededRepo()
	repo.updateErr = gorm.ErrDuplicatedKey
	svc := NewCategoryService(repo)
	slug := "raced"

	err := svc.Update(context.Background(), repo.categories[0].ID, dto.UpdateCategoryRequest{Slug: &slug})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestDeleteCategory(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)

	require.NoError(t, svc.Delete(context.Background(), repo.categories[0].ID))
	assert.Empty(t, repo.categories)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(seededRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assertStatus(t, err, http.StatusNotFound)
}

func TestFindOne(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)

	t.Run("by id", func(t *testing.T) {
		found, err := svc.FindOne(context.Background(), dto.GetCategoryRequest{
			Field: "id",
			Value: repo.categories[0].ID.String(),
		})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "first", found.Slug)
	})

	t.Run("by slug", func(t *testing.T) {
		found, err := svc.FindOne(context.Background(), dto.GetCategoryRequest{
			Field: "slug",
			Value: "first",
		})
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("miss is nil, not an error", func(t *testing.T) {
		found, err := svc.FindOne(context.Background(), dto.GetCategoryRequest{
			Field: "id",
			Value: "13eeec07-00e0-4224-aeff-78740212623b",
		})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("slug miss is nil too", func(t *testing.T) {
		found, err := svc.FindOne(context.Background(), dto.GetCategoryRequest{
			Field: "slug",
			Value: "sluuug",
		})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestListBuildsPlan(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)
	page := 2
	pageSize := 4

	_, err := svc.List(context.Background(), dto.FilterCategoriesRequest{
		Search:   "  мед ",
		Active:   "1",
		Sort:     "-name",
		Page:     &page,
		PageSize: &pageSize,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastPlan)
	assert.Equal(t, "мед", repo.lastPlan.Search)
	require.NotNil(t, repo.lastPlan.Active)
	assert.True(t, *repo.lastPlan.Active)
	assert.Equal(t, "name", repo.lastPlan.OrderColumn)
	assert.True(t, repo.lastPlan.OrderDesc)
	assert.Equal(t, 4, repo.lastPlan.Offset)
	assert.Equal(t, 4, repo.lastPlan.Limit)
}

func TestListRejectsBadActive(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)

	_, err := svc.List(context.Background(), dto.FilterCategoriesRequest{Active: "2"})
	assertStatus(t, err, http.StatusBadRequest)
	assert.Nil(t, repo.lastPlan)
}

func TestListDefaults(t *testing.T) {
	repo := seededRepo()
	svc := NewCategoryService(repo)

	_, err := svc.List(context.Background(), dto.FilterCategoriesRequest{})
	require.NoError(t, err)

	require.NotNil(t, repo.lastPlan)
	assert.Equal(t, "created_date", repo.lastPlan.OrderColumn)
	assert.True(t, repo.lastPlan.OrderDesc)
	assert.Equal(t, 0, repo.lastPlan.Offset)
	assert.Equal(t, query.DefaultPageSize, repo.lastPlan.Limit)
	assert.Nil(t, repo.lastPlan.Active)
}
