package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourse(title, url string) *scout.ScrapedCourse {
	price, rating := 49.99, 4.5
	return &scout.ScrapedCourse{
		Title:       title,
		Provider:    "Tech Institute",
		Description: "Learn the fundamentals.",
		Skills:      []string{"python"},
		Level:       scout.LevelIntermediate,
		Duration:    "6 weeks",
		Price:       &price,
		Rating:      &rating,
		URL:         url,
		Source:      "Coursera",
	}
}

func TestCourseService_CreateCourses(t *testing.T) {
	t.Parallel()

	t.Run("round-trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCourseService(setupTestDB(t))
		ctx := context.Background()
		course := newCourse("Python Fundamentals Course", "https://example.com/courses/1")
		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{course}))

		got, err := svc.FindCourseByID(ctx, course.ID)

		require.NoError(t, err)
		assert.Equal(t, course.Title, got.Title)
		assert.Equal(t, course.Provider, got.Provider)
		assert.Equal(t, course.Skills, got.Skills)
		assert.Equal(t, scout.LevelIntermediate, got.Level)
		assert.Equal(t, "6 weeks", got.Duration)
		assert.Equal(t, course.Price, got.Price)
		assert.Equal(t, course.Rating, got.Rating)
		assert.Equal(t, "Coursera", got.Source)
	})

	t.Run("stores course without price or rating", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCourseService(setupTestDB(t))
		ctx := context.Background()
		course := newCourse("Go Bootcamp", "https://example.com/courses/1")
		course.Price, course.Rating = nil, nil
		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{course}))

		got, err := svc.FindCourseByID(ctx, course.ID)

		require.NoError(t, err)
		assert.Nil(t, got.Price)
		assert.Nil(t, got.Rating)
	})

	t.Run("keeps original ID when URL is saved again", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCourseService(setupTestDB(t))
		ctx := context.Background()
		first := newCourse("Go Bootcamp", "https://example.com/courses/1")
		second := newCourse("Go Bootcamp 2025", "https://example.com/courses/1")

		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{first}))
		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{second}))

		assert.Equal(t, first.ID, second.ID)
		got, err := svc.FindCourseByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Bootcamp 2025", got.Title)
	})

	t.Run("updates stored course when only price changes", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCourseService(setupTestDB(t))
		ctx := context.Background()
		first := newCourse("Go Bootcamp", "https://example.com/courses/1")
		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{first}))

		second := newCourse("Go Bootcamp", "https://example.com/courses/1")
		price := 9.99
		second.Price = &price
		require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{second}))

		got, err := svc.FindCourseByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Price)
		assert.InDelta(t, 9.99, *got.Price, 0.001)
	})

	t.Run("rejects invalid course", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewCourseService(setupTestDB(t))

		err := svc.CreateCourses(context.Background(), []*scout.ScrapedCourse{{URL: "https://example.com"}})

		assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
	})
}

func TestCourseService_FindCourses(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewCourseService(setupTestDB(t))
	ctx := context.Background()
	udemy := newCourse("Go Bootcamp", "https://example.com/courses/2")
	udemy.Source = "Udemy"
	require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{
		newCourse("Python Course", "https://example.com/courses/1"),
		udemy,
	}))

	courses, err := svc.FindCourses(ctx, scout.CourseFilter{Source: strPtr("Udemy")})

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Bootcamp", courses[0].Title)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewCourseService(setupTestDB(t))
	ctx := context.Background()
	course := newCourse("Go Bootcamp", "https://example.com/courses/1")
	require.NoError(t, svc.CreateCourses(ctx, []*scout.ScrapedCourse{course}))

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))
	assert.Equal(t, scout.ENOTFOUND, scout.ErrorCode(svc.DeleteCourse(ctx, course.ID)))
}
